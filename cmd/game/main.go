package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/bughunt/engine/audio"
	"github.com/1siamBot/bughunt/engine/config"
	"github.com/1siamBot/bughunt/engine/core"
	"github.com/1siamBot/bughunt/engine/flavor"
	"github.com/1siamBot/bughunt/engine/game"
	"github.com/1siamBot/bughunt/engine/input"
	"github.com/1siamBot/bughunt/engine/network"
	"github.com/1siamBot/bughunt/engine/render"
	"github.com/1siamBot/bughunt/engine/ui"
)

// Game implements ebiten.Game interface
type Game struct {
	ctrl  *game.Controller
	input *input.InputState
	scene *render.SceneRenderer
	hud   *ui.HUD
	menu  *ui.MenuSystem
	audio *audio.AudioManager

	width, height int
}

func NewGame(ctrl *game.Controller, am *audio.AudioManager, w, h int) *Game {
	g := &Game{
		ctrl:   ctrl,
		input:  input.NewInputState(),
		scene:  render.NewSceneRenderer(),
		hud:    ui.NewHUD(w, h),
		menu:   ui.NewMenuSystem(w, h),
		audio:  am,
		width:  w,
		height: h,
	}
	g.hud.Muted = am.Muted
	g.scene.Camera.Listen(ctrl.Bus())
	g.menu.OnStart = func() { g.transition("start", ctrl.Start) }
	g.menu.OnAdvance = func() { g.transition("advance", ctrl.Advance) }
	g.menu.OnRestart = func() { g.transition("restart", ctrl.Restart) }
	return g
}

// transition runs a state change; rejected ones are logged and ignored
func (g *Game) transition(name string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("[game] %s ignored: %v", name, err)
	}
}

func (g *Game) Update() error {
	g.input.Update()
	if g.input.Quit {
		return ebiten.Termination
	}
	if g.input.Mute {
		g.hud.Muted = g.audio.ToggleMute()
	}

	g.ctrl.Resize(float64(g.width), float64(g.height))
	g.hud.ScreenW, g.hud.ScreenH = g.width, g.height
	g.menu.ScreenW, g.menu.ScreenH = g.width, g.height

	snap := g.ctrl.Snapshot()
	x, y, clicked := g.input.Click()
	if snap.State == core.StatePlaying {
		if clicked {
			if id, ok := input.Pick(snap.Entities, float64(x), float64(y)); ok {
				g.ctrl.Hit(id, float64(x), float64(y))
			}
		}
	} else {
		mx, my := g.input.MouseX, g.input.MouseY
		if clicked {
			mx, my = x, y
		}
		g.menu.Update(1/float64(ebiten.TPS()), snap.State, mx, my, clicked, g.input.Confirm)
	}

	g.ctrl.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.ctrl.Snapshot()
	g.scene.Draw(screen, snap)
	g.hud.Draw(screen, snap)
	g.menu.Draw(screen, snap)
}

// Layout follows the window size; the new size is applied on the next Update
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	cfgPath := flag.String("config", "bughunt.yaml", "path to the YAML config file")
	seed := flag.Uint64("seed", 0, "random seed (0 uses the clock)")
	spectate := flag.String("spectate", "", "serve spectators on this address, e.g. :8090")
	record := flag.String("record", "", "record published snapshots to this file")
	mute := flag.Bool("mute", false, "start with sound muted")
	flag.Parse()

	config.LoadEnv()
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *spectate != "" {
		cfg.Spectate.Addr = *spectate
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[game] seed %d", cfg.Seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var provider flavor.Provider = flavor.Offline{}
	if key := cfg.APIKey(); cfg.Flavor.Enabled && key != "" {
		gem, err := flavor.NewGemini(ctx, key, cfg.Flavor.Model)
		if err != nil {
			log.Printf("[flavor] %v; using fallback text", err)
		} else {
			provider = gem
		}
	} else {
		log.Printf("[flavor] no API key or disabled; using fallback text")
	}

	var pubs network.Multi
	var srv *http.Server
	if cfg.Spectate.Addr != "" {
		hub := network.NewHub()
		go hub.Run(ctx)
		mux := http.NewServeMux()
		mux.Handle("/spectate", hub)
		srv = &http.Server{Addr: cfg.Spectate.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Printf("[spectate] listening on %s (ws endpoint: /spectate)", cfg.Spectate.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[spectate] %v", err)
			}
		}()
		pubs = append(pubs, hub)
	}
	var rec *network.Replay
	if *record != "" {
		if rec, err = network.NewReplayRecorder(*record); err != nil {
			log.Fatal(err)
		}
		pubs = append(pubs, rec)
	}

	opts := game.Options{
		Bounds:         core.Bounds{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)},
		TickRate:       cfg.TickRate,
		Rand:           core.NewRand(cfg.Seed),
		Provider:       provider,
		RequestTimeout: cfg.Flavor.Timeout,
		PublishEvery:   uint64(cfg.Spectate.Every),
	}
	if len(pubs) > 0 {
		opts.Publisher = pubs
	}
	ctrl := game.NewController(opts)

	am := audio.NewAudioManager(cfg.Audio.Enabled, cfg.Audio.Volume)
	am.Muted = *mute
	am.Listen(ctrl.Bus())

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(cfg.TickRate))

	g := NewGame(ctrl, am, cfg.Window.Width, cfg.Window.Height)
	runErr := ebiten.RunGame(g)

	ctrl.Close()
	cancel()
	if srv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		done()
	}
	if rec != nil {
		if err := rec.Close(); err != nil {
			log.Printf("[replay] %v", err)
		}
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}
