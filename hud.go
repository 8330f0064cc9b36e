package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/renn8/worldshift/common"
	"github.com/renn8/worldshift/shift"
	"golang.org/x/image/font/basicfont"
)

const (
	gaugeBarX      = 16
	gaugeBarY      = 60
	gaugeBarWidth  = 180
	gaugeBarHeight = 10
	forcedFlashSec = 0.6
)

// HUD shows the shift state in the top-left corner: current mode, the
// extended-charge count, and the forced-shift gauge. A forced shift also
// flashes the screen briefly.
type HUD struct {
	authority *shift.Authority
	ui        *ebitenui.UI

	modeLabel   *widget.Text
	chargeLabel *widget.Text
	flash       float64
}

func NewHUD(authority *shift.Authority) *HUD {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	modeLabel := widget.NewText(
		widget.TextOpts.Text("", &face, white),
	)
	chargeLabel := widget.NewText(
		widget.TextOpts.Text("", &face, white),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 140})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(gaugeBarWidth+24, 0),
		),
	)
	panel.AddChild(modeLabel)
	panel.AddChild(chargeLabel)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	h := &HUD{
		authority:   authority,
		ui:          &ebitenui.UI{Container: root},
		modeLabel:   modeLabel,
		chargeLabel: chargeLabel,
	}
	authority.SubscribeForced(func() { h.flash = forcedFlashSec })
	return h
}

func (h *HUD) Update() {
	if h.flash > 0 {
		h.flash -= common.Dt
	}
	h.modeLabel.Label = fmt.Sprintf("mode: %s", h.authority.Mode())
	h.chargeLabel.Label = fmt.Sprintf("charges: %d/%d", h.authority.Charges(), h.authority.MaxCharges())
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)

	// gauge bar; only meaningful while calm
	vector.DrawFilledRect(screen, gaugeBarX, gaugeBarY, gaugeBarWidth, gaugeBarHeight,
		color.NRGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xc0}, false)
	if h.authority.Mode() == shift.Calm {
		fill := float32(h.authority.GaugeFraction()) * gaugeBarWidth
		vector.DrawFilledRect(screen, gaugeBarX, gaugeBarY, fill, gaugeBarHeight,
			color.NRGBA{R: 0x9b, G: 0x5d, B: 0xe5, A: 0xff}, false)
	}

	if h.flash > 0 {
		alpha := uint8(180 * h.flash / forcedFlashSec)
		vector.DrawFilledRect(screen, 0, 0, common.BaseWidth, common.BaseHeight,
			color.NRGBA{R: 0x9b, G: 0x5d, B: 0xe5, A: alpha}, false)
	}
}
