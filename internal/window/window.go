// Package window opens the interactive status window and reads the keyboard
// through SDL2.
package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/locomotion"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Window wraps the SDL2 window and its OpenGL context.
type Window struct {
	config    Config
	log       *zap.Logger
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// New creates a window with an OpenGL 4.1 core context.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Window{
		config: cfg,
		log:    log,
	}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	// gl.Init must follow context creation.
	if err := gl.Init(); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync),
		zap.String("gl_version", gl.GoStr(gl.GetString(gl.VERSION))),
	)
	return w, nil
}

// Close destroys the window and shuts SDL2 down.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// StatusColor is the clear colour shown for each locomotion status.
func StatusColor(s locomotion.Status) mgl32.Vec4 {
	switch s {
	case locomotion.Grounded:
		return mgl32.Vec4{0.15, 0.45, 0.2, 1}
	case locomotion.Airborne:
		return mgl32.Vec4{0.2, 0.3, 0.6, 1}
	case locomotion.SteepSlope:
		return mgl32.Vec4{0.6, 0.35, 0.1, 1}
	default:
		return mgl32.Vec4{0.1, 0.1, 0.15, 1}
	}
}

// Present shows the frame's status and swaps buffers. The title carries the
// numbers a colour cannot.
func (w *Window) Present(status locomotion.Status, position mgl32.Vec3, speed float32) {
	width, height := w.sdlWindow.GetSize()
	gl.Viewport(0, 0, width, height)

	c := StatusColor(status)
	gl.ClearColor(c.X(), c.Y(), c.Z(), c.W())
	gl.Clear(gl.COLOR_BUFFER_BIT)

	w.sdlWindow.SetTitle(fmt.Sprintf("%s | %s | pos %.2f %.2f %.2f | speed %.1f",
		w.config.Title, status, position.X(), position.Y(), position.Z(), speed))
	w.sdlWindow.GLSwap()
}
