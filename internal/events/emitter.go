package events

import (
	"context"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var (
	emitMu sync.RWMutex
	emitFn = func(ctx context.Context, name string, evt Event) {}
)

// Emit publishes evt under name with the currently installed emitter.
func Emit(ctx context.Context, name string, evt Event) {
	emitMu.RLock()
	f := emitFn
	emitMu.RUnlock()
	if evt.ProjectID == "" {
		evt.ProjectID = ProjectFromContext(ctx)
	}
	f(ctx, name, evt)
}

// EnableRuntimeEmitter forwards events to the Wails frontend and the
// runtime log. ctx must be the context Wails passed to OnStartup.
func EnableRuntimeEmitter() {
	setEmitter(func(ctx context.Context, name string, evt Event) {
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, name, evt)
	})
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt Event)) {
	if f == nil {
		f = func(context.Context, string, Event) {}
	}
	setEmitter(f)
}

func setEmitter(f func(ctx context.Context, name string, evt Event)) {
	emitMu.Lock()
	emitFn = f
	emitMu.Unlock()
}
