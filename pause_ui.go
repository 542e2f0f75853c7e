package main

import (
	"image/color"

	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/logging"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	pauseText  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	pausePanel = color.NRGBA{R: 0x10, G: 0x14, B: 0x1c, A: 210}
	pauseBtn   = color.NRGBA{R: 0x33, G: 0x3a, B: 0x48, A: 255}
	pauseHover = color.NRGBA{R: 0x4a, G: 0x55, B: 0x6a, A: 255}
)

// NewPauseUI builds the pause menu: Resume, Restart and Quit.
// Labels use the built-in basic font so no theme fonts are needed.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(pausePanel)
	btnImage := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(pauseBtn),
		Hover:   imageui.NewNineSliceColor(pauseHover),
		Pressed: imageui.NewNineSliceColor(pauseHover),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: pauseText}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(btnImage),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, pauseText),
		widget.TextOpts.WidgetOpts(centered),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(button("Resume", func() { g.paused = false }))
	panel.AddChild(button("Restart", func() {
		if err := g.loadLevel(); err != nil {
			logging.L().Error("restart", "err", err)
			return
		}
		g.paused = false
	}))
	panel.AddChild(button("Quit", func() { g.quit = true }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
