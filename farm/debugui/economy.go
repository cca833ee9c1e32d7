package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bloodfarm/farm"
)

// RenderEconomy shows the balance and running totals of a snapshot.
func RenderEconomy(snapshot farm.Snapshot) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 200), imgui.CondOnce)

	if !imgui.BeginV("Economy", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Step: %d", snapshot.Step))
	imgui.Text(fmt.Sprintf("Balance: %.2f", snapshot.Balance))
	imgui.Text(fmt.Sprintf("Player: (%.1f, %.1f)", snapshot.Player.X, snapshot.Player.Y))
	imgui.Separator()

	ledger := snapshot.Ledger
	imgui.Text(fmt.Sprintf("Spawned: %d", ledger.Spawned))
	imgui.Text(fmt.Sprintf("Expired: %d", ledger.Expired))
	imgui.Text(fmt.Sprintf("Rejected: %d", ledger.Rejected))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Spent: %.2f | Earned: %.2f", ledger.Spent, ledger.Earned))
	imgui.Text(fmt.Sprintf("Net: %.2f", ledger.Net()))

	imgui.End()
}
