package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/bloodfarm/farm"
	"github.com/plus3/bloodfarm/farm/debugui"
)

const (
	ScreenWidth  = 640
	ScreenHeight = 480
	WindowTitle  = "Blood Harvester Farm"

	PlayerSize  = 100
	BrainRadius = 12
)

var (
	backgroundColor = color.RGBA{24, 20, 28, 255}
	playerColor     = color.RGBA{186, 225, 255, 255}
	brainColor      = color.RGBA{200, 40, 60, 255}
)

type Game struct {
	Session *farm.Session
	Overlay *debugui.Overlay
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults are used when empty.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	verbose := flag.Bool("v", false, "Log every spawn and expiry.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := farm.DefaultConfig()
	if *configPath != "" {
		loaded, err := farm.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	session, err := farm.NewSession(cfg, farm.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	logger.Info("session started", "session", session.ID(), "balance", cfg.StartingBalance)

	game := &Game{Session: session}
	if *debug {
		game.Overlay = debugui.NewOverlay(WindowTitle, ScreenWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle(WindowTitle)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited: %v", err)
	}

	ledger := session.Ledger()
	logger.Info("session ended", "session", session.ID(), "spawned", ledger.Spawned, "expired", ledger.Expired, "net", ledger.Net())
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	raw := readInput()
	if g.Overlay != nil && g.Overlay.Input().WantCaptureKeyboard {
		raw = g.Session.HeldInput()
	}

	g.Session.Step(1.0/float64(ebiten.TPS()), raw)

	if g.Overlay != nil {
		g.Overlay.Update(g.Session)
	}
	return nil
}

func readInput() farm.RawInput {
	return farm.RawInput{
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Spawn: ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snapshot := g.Session.Snapshot()

	for _, brain := range snapshot.Brains {
		sx, sy := toScreen(brain.Position)
		c := brainColor
		if brain.Lifetime > 0 {
			alpha := brain.Remaining / brain.Lifetime
			alpha = max(0.15, min(1, alpha))
			c.A = uint8(255 * alpha)
			// vector expects premultiplied colors.
			c.R = uint8(float64(c.R) * alpha)
			c.G = uint8(float64(c.G) * alpha)
			c.B = uint8(float64(c.B) * alpha)
		}
		vector.DrawFilledCircle(screen, sx, sy, BrainRadius, c, true)
	}

	px, py := toScreen(snapshot.Player)
	vector.DrawFilledRect(screen, px-PlayerSize/2, py-PlayerSize/2, PlayerSize, PlayerSize, playerColor, false)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Balance: %.0f\nBrains: %d\nNet: %+.0f\nArrows move, Space plants a brain",
		snapshot.Balance, len(snapshot.Brains), snapshot.Ledger.Net(),
	))

	if g.Overlay != nil {
		g.Overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Overlay != nil {
		g.Overlay.Layout(ScreenWidth, ScreenHeight)
	}
	return ScreenWidth, ScreenHeight
}

// toScreen maps a y-up world position centred on the origin to screen pixels.
func toScreen(p farm.Vec2) (float32, float32) {
	return ScreenWidth/2 + p.X, ScreenHeight/2 - p.Y
}
