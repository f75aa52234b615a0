package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/dyntable"
	"github.com/ayn2op/dyntable/config"
	"github.com/ayn2op/dyntable/demo"
	"github.com/ayn2op/dyntable/help"
	"github.com/ayn2op/dyntable/keybind"
)

// appKeys are the bindings handled outside the table.
type appKeys struct {
	table  dyntable.TableKeys
	Reload keybind.Keybind
	Remove keybind.Keybind
	Kind   keybind.Keybind
	Help   keybind.Keybind
	Quit   keybind.Keybind
}

func newAppKeys(cfg config.Config) appKeys {
	return appKeys{
		table:  cfg.TableKeys(),
		Reload: keybind.NewKeybind(keybind.WithKeys(cfg.Keys.Reload...), keybind.WithHelp(firstKey(cfg.Keys.Reload), "reload")),
		Remove: keybind.NewKeybind(keybind.WithKeys(cfg.Keys.Remove...), keybind.WithHelp(firstKey(cfg.Keys.Remove), "remove row")),
		Kind:   keybind.NewKeybind(keybind.WithKeys(cfg.Keys.Kind...), keybind.WithHelp(firstKey(cfg.Keys.Kind), "next kind")),
		Help:   keybind.NewKeybind(keybind.WithKeys(cfg.Keys.Help...), keybind.WithHelp(firstKey(cfg.Keys.Help), "help")),
		Quit:   keybind.NewKeybind(keybind.WithKeys(cfg.Keys.Quit...), keybind.WithHelp(firstKey(cfg.Keys.Quit), "quit")),
	}
}

func (k appKeys) ShortHelp() []keybind.Keybind {
	return append(k.table.ShortHelp(), k.Help, k.Quit)
}

func (k appKeys) FullHelp() [][]keybind.Keybind {
	return append(k.table.FullHelp(), []keybind.Keybind{k.Reload, k.Remove, k.Kind, k.Help, k.Quit})
}

func firstKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// ui is the root primitive: the table above a status line and the help bar.
type ui struct {
	*dyntable.Stack

	table  *dyntable.DynamicTable
	rows   *demo.Rows
	status *dyntable.TextRow
	help   *help.Help
	keys   appKeys
	logger *log.Logger

	width    int
	selected string
	lastErr  error
}

// newUI builds the screen. post must hand its function to the goroutine
// running the application and return without running it.
func newUI(ctx context.Context, source *demo.Source, kind demo.Kind, cfg config.Config, post func(func()), logger *log.Logger) *ui {
	u := &ui{
		Stack:  dyntable.NewStack(),
		table:  dyntable.NewDynamicTable(),
		status: dyntable.NewTextRow(""),
		help:   help.New(),
		keys:   newAppKeys(cfg),
		logger: logger,
	}

	u.rows = demo.NewRows(ctx, source, kind, post).
		SetPrefetch(cfg.Demo.Prefetch).
		SetLogger(logger).
		SetSelectedFunc(func(index int, item demo.Item) {
			u.selected = fmt.Sprintf("#%d %s", index+1, firstLine(item.Value))
		})

	u.table.SetDataSource(u.rows).
		SetDelegate(u.rows).
		SetLogger(logger)
	cfg.Apply(u.table)
	u.table.SetTitle(" " + string(kind) + " ")

	u.status.SetTextStyle(tcell.StyleDefault.Foreground(dyntable.Styles.SecondaryTextColor).Background(dyntable.Styles.PrimitiveBackgroundColor))
	u.help.SetKeyMap(u.keys)

	u.AddItem(u.table, 0, true).
		AddItem(u.status, 1, false).
		AddItem(u.help, 1, false)
	return u
}

// Draw refreshes the status line and the help height before drawing. Rows
// are measured again whenever the width changes since their text wraps
// differently.
func (u *ui) Draw(screen tcell.Screen) {
	_, _, width, _ := u.GetRect()
	u.SetItemHeight(u.help, u.help.Height(width))
	u.status.SetText(u.statusLine())
	u.Stack.Draw(screen)

	if width != u.width {
		u.width = width
		u.table.ReloadData()
		u.status.SetText(u.statusLine())
		u.Stack.Draw(screen)
	}
}

// InputHandler handles the application keys and passes the rest to the
// table.
func (u *ui) InputHandler(event *tcell.EventKey) dyntable.Command {
	switch {
	case keybind.Matches(event, u.keys.Quit):
		return dyntable.QuitCommand{}
	case keybind.Matches(event, u.keys.Reload):
		u.reload()
	case keybind.Matches(event, u.keys.Remove):
		u.removeSelected()
	case keybind.Matches(event, u.keys.Kind):
		u.nextKind()
	case keybind.Matches(event, u.keys.Help):
		u.help.Toggle()
	default:
		return u.Stack.InputHandler(event)
	}
	return dyntable.RedrawCommand{}
}

func (u *ui) reload() {
	u.lastErr = nil
	u.selected = ""
	u.table.ReloadData()
	u.logger.Debug("reloaded", "kind", u.rows.Kind(), "rows", u.table.RowCount())
}

func (u *ui) removeSelected() {
	index := u.table.Selected()
	if index < 0 {
		return
	}
	if err := u.rows.Remove(u.table, index); err != nil {
		u.lastErr = err
		u.logger.Warn("remove failed", "index", index, "err", err)
		return
	}
	u.selected = ""
}

func (u *ui) nextKind() {
	i := slices.Index(demo.Kinds, u.rows.Kind())
	kind := demo.Kinds[(i+1)%len(demo.Kinds)]
	u.rows.SetKind(kind)
	u.table.SetTitle(" " + string(kind) + " ")
	u.table.SetOffset(0, 0)
	u.reload()
}

func (u *ui) statusLine() string {
	parts := []string{
		fmt.Sprintf("%d rows", u.table.RowCount()),
		fmt.Sprintf("zoom %.1f", u.table.Zoom()),
	}
	if u.selected != "" {
		parts = append(parts, u.selected)
	}
	if u.lastErr != nil {
		parts = append(parts, u.lastErr.Error())
	}
	return strings.Join(parts, "  ")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

var _ dyntable.Primitive = &ui{}
