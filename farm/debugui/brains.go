package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bloodfarm/farm"
)

// BrainTable lists the live brains, oldest first.
type BrainTable struct {
	maxRows int
}

func NewBrainTable(maxRows int) *BrainTable {
	return &BrainTable{maxRows: maxRows}
}

func (bt *BrainTable) Render(brains []farm.BrainState) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 220), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 240), imgui.CondOnce)

	if !imgui.BeginV("Brains", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Live: %d", len(brains)))

	rows := brains
	if len(rows) > bt.maxRows {
		rows = rows[:bt.maxRows]
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("BrainTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Remaining")
		imgui.TableHeadersRow()

		for _, brain := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", brain.Id))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("(%.1f, %.1f)", brain.Position.X, brain.Position.Y))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2fs / %.2fs", brain.Remaining, brain.Lifetime))
		}

		imgui.EndTable()
	}

	if hidden := len(brains) - len(rows); hidden > 0 {
		imgui.Text(fmt.Sprintf("... and %d more", hidden))
	}

	imgui.End()
}
