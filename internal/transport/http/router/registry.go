package router

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// A module implements either or both mount interfaces.
type APIModule interface{ MountAPI(*gin.RouterGroup) }
type AdminModule interface{ MountAdmin(*gin.RouterGroup) }

// Modules may order themselves; lower mounts first, default 100.
type prioritizer interface{ Priority() int }

const defaultPriority = 100

type registry struct {
	mu    sync.RWMutex
	api   []APIModule
	admin []AdminModule
}

var modules registry

// Register files mod under every engine it can mount on. A value that
// mounts nowhere is a wiring mistake and panics at startup.
func Register(mod any) {
	modules.mu.Lock()
	defer modules.mu.Unlock()

	api, isAPI := mod.(APIModule)
	admin, isAdmin := mod.(AdminModule)
	if !isAPI && !isAdmin {
		panic(fmt.Sprintf("router: %T implements neither MountAPI nor MountAdmin", mod))
	}
	if isAPI {
		modules.api = append(modules.api, api)
	}
	if isAdmin {
		modules.admin = append(modules.admin, admin)
	}
}

func MountAllAPI(g *gin.RouterGroup) {
	modules.mu.RLock()
	mods := append([]APIModule(nil), modules.api...)
	modules.mu.RUnlock()
	for _, m := range byPriority(mods) {
		m.MountAPI(g)
	}
}

func MountAllAdmin(g *gin.RouterGroup) {
	modules.mu.RLock()
	mods := append([]AdminModule(nil), modules.admin...)
	modules.mu.RUnlock()
	for _, m := range byPriority(mods) {
		m.MountAdmin(g)
	}
}

// reset empties the registry between tests.
func reset() {
	modules.mu.Lock()
	defer modules.mu.Unlock()
	modules.api, modules.admin = nil, nil
}

// byPriority sorts in place, keeping registration order among equals.
func byPriority[M any](mods []M) []M {
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	return mods
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return defaultPriority
}
