package imageredux

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
)

// Gui is the desktop shell around the queue and coordinator. All of its
// methods run on the UI thread; worker events re-enter it through fyne.Do.
type Gui struct {
	cfg     *Config
	fyneApp fyne.App
	win     fyne.Window

	queue  *Queue
	coord  *Coordinator
	thumbs *ThumbnailCache

	list          *widget.List
	qualitySlider *widget.Slider
	sizeSlider    *widget.Slider
	folderEntry   *widget.Entry
	status        *widget.Label
	progress      *widget.ProgressBar
	progressDlg   dialog.Dialog

	selected int
}

func NewGui(cfg *Config) *Gui {
	return &Gui{
		cfg:      cfg,
		queue:    NewQueue(),
		coord:    NewCoordinator(),
		thumbs:   NewThumbnailCache(),
		selected: -1,
	}
}

// Run builds the window and enters the Fyne event loop. Blocks until the
// window is closed.
func (g *Gui) Run() {
	g.fyneApp = app.NewWithID("io.github.imageredux")
	g.win = g.fyneApp.NewWindow("Image Redux")
	g.win.Resize(fyne.NewSize(float32(g.cfg.WindowWidth), float32(g.cfg.WindowHeight)))

	g.buildWidgets()
	g.win.ShowAndRun()
}

func (g *Gui) buildWidgets() {
	g.list = widget.NewList(
		func() int { return g.queue.Len() },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.FileImageIcon()),
				widget.NewIcon(theme.MediaPhotoIcon()),
				widget.NewLabel("template"),
			)
		},
		g.updateListItem,
	)
	g.list.OnSelected = func(id widget.ListItemID) {
		g.selected = int(id)
	}
	g.list.OnUnselected = func(id widget.ListItemID) {
		if g.selected == int(id) {
			g.selected = -1
		}
	}

	qualityValue := widget.NewLabel(fmt.Sprintf("%d", g.cfg.Quality))
	g.qualitySlider = widget.NewSlider(1, 100)
	g.qualitySlider.Step = 1
	g.qualitySlider.SetValue(float64(g.cfg.Quality))
	g.qualitySlider.OnChanged = func(v float64) {
		qualityValue.SetText(fmt.Sprintf("%d", int(v)))
	}

	sizeValue := widget.NewLabel(fmt.Sprintf("%d%%", g.cfg.SizePercent))
	g.sizeSlider = widget.NewSlider(1, 100)
	g.sizeSlider.Step = 1
	g.sizeSlider.SetValue(float64(g.cfg.SizePercent))
	g.sizeSlider.OnChanged = func(v float64) {
		sizeValue.SetText(fmt.Sprintf("%d%%", int(v)))
	}

	g.folderEntry = widget.NewEntry()
	g.folderEntry.SetPlaceHolder("Output folder name")
	g.folderEntry.SetText(g.cfg.OutputFolder)

	settings := container.New(layout.NewFormLayout(),
		widget.NewLabel("Quality:"), container.NewBorder(nil, nil, nil, qualityValue, g.qualitySlider),
		widget.NewLabel("Size:"), container.NewBorder(nil, nil, nil, sizeValue, g.sizeSlider),
		widget.NewLabel("Output folder:"), g.folderEntry,
	)

	addBtn := widget.NewButtonWithIcon("Add Images", theme.ContentAddIcon(), g.addFromDialog)
	removeBtn := widget.NewButtonWithIcon("Remove Selected", theme.DeleteIcon(), g.removeSelected)
	clearBtn := widget.NewButton("Clear All", func() {
		g.queue.Clear()
		g.selected = -1
		g.list.Refresh()
	})
	convertBtn := widget.NewButtonWithIcon("Convert", theme.MediaPlayIcon(), g.convert)
	convertBtn.Importance = widget.HighImportance

	dropHint := widget.NewLabelWithStyle("Drop your images anywhere in the window",
		fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	g.status = widget.NewLabel("")

	g.win.SetContent(container.NewBorder(
		settings,
		container.NewVBox(dropHint, container.NewHBox(addBtn, removeBtn, clearBtn), convertBtn, g.status),
		nil, nil,
		g.list,
	))

	g.win.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		for _, uri := range uris {
			g.addPath(uri.Path())
		}
	})
	g.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			g.removeSelected()
		}
	})
}

func (g *Gui) updateListItem(id widget.ListItemID, obj fyne.CanvasObject) {
	if int(id) >= g.queue.Len() {
		return
	}
	job := g.queue.At(int(id))
	row := obj.(*fyne.Container)
	state := row.Objects[0].(*widget.Icon)
	thumb := row.Objects[1].(*widget.Icon)
	label := row.Objects[2].(*widget.Label)

	if job.Processed {
		state.SetResource(theme.ConfirmIcon())
	} else {
		state.SetResource(theme.FileImageIcon())
	}
	label.SetText(job.SourcePath)

	if res := g.thumbs.Get(job.SourcePath, func(fyne.Resource) {
		fyne.Do(func() { g.list.Refresh() })
	}); res != nil {
		thumb.SetResource(res)
	} else {
		thumb.SetResource(theme.MediaPhotoIcon())
	}
}

// addPath queues a dropped or picked path. Folders are walked for images,
// duplicates are ignored.
func (g *Gui) addPath(path string) {
	info, err := os.Stat(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("ignoring dropped path")
		return
	}
	if info.IsDir() {
		images, err := ListImages(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not list folder")
			return
		}
		for _, image := range images {
			g.queue.Add(image)
		}
	} else {
		g.queue.Add(path)
	}
	g.list.Refresh()
}

func (g *Gui) addFromDialog() {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		r.Close()
		g.addPath(r.URI().Path())
	}, g.win)
	fd.Show()
}

func (g *Gui) removeSelected() {
	if g.selected < 0 || g.selected >= g.queue.Len() {
		return
	}
	g.queue.RemoveAt(g.selected)
	g.list.UnselectAll()
	g.selected = -1
	g.list.Refresh()
}

func (g *Gui) convert() {
	folder := strings.TrimSpace(g.folderEntry.Text)
	if folder == "" {
		folder = "reduced"
	}
	req := Request{
		SizeFactor:   g.sizeSlider.Value / 100.0,
		Quality:      int(g.qualitySlider.Value),
		OutputFolder: folder,
	}

	hooks := BatchHooks{
		OnItem: func(job *Job, success bool) {
			fyne.Do(func() { g.itemConverted(job, success) })
		},
		OnDone: func(result BatchFinished) {
			fyne.Do(func() { g.batchFinished(result) })
		},
	}

	pending := len(g.queue.Pending())
	err := g.coord.Start(g.queue.Jobs(), req, hooks)
	switch {
	case errors.Is(err, ErrNothingToDo):
		dialog.ShowInformation("No image to convert", "All the images are converted.", g.win)
	case errors.Is(err, ErrBatchRunning):
		dialog.ShowInformation("Conversion in progress", "Wait for the current batch to finish or cancel it.", g.win)
	case err == nil:
		g.showProgress(pending)
	}
}

func (g *Gui) showProgress(total int) {
	g.progress = widget.NewProgressBar()
	g.progress.Max = float64(total)
	g.progressDlg = dialog.NewCustom("Converting images", "Cancel", g.progress, g.win)
	g.progressDlg.SetOnClosed(g.coord.Cancel)
	g.progressDlg.Show()
}

func (g *Gui) itemConverted(job *Job, success bool) {
	if success {
		g.progress.SetValue(g.progress.Value + 1)
	}
	if index := g.indexOf(job); index >= 0 {
		g.list.RefreshItem(index)
	}
}

func (g *Gui) batchFinished(result BatchFinished) {
	if g.progressDlg != nil {
		g.progressDlg.Hide()
		g.progressDlg = nil
	}

	stats := AccumulateStats(g.queue.Jobs())
	text := stats.String()
	if result.Cancelled {
		text = "Cancelled. " + text
	} else if result.Converted < result.Attempted {
		text = fmt.Sprintf("%s, %d failed", text, result.Attempted-result.Converted)
	}
	g.status.SetText(text)
	g.list.Refresh()
}

func (g *Gui) indexOf(job *Job) widget.ListItemID {
	for i, candidate := range g.queue.Jobs() {
		if candidate == job {
			return widget.ListItemID(i)
		}
	}
	return -1
}
