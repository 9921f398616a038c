// Package tui is the interactive terminal client for the task manager.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"task-manager/internal/domain"
	"task-manager/internal/logging"
)

// EmptyMessage is shown when there are no tasks
const EmptyMessage = "No tasks found. Add your first task above!"

const dateFormat = "Jan 2, 2006"

// TaskAPI is the subset of the REST client the terminal client uses
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, task domain.NewTask) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type focus int

const (
	focusList focus = iota
	focusTitle
	focusDescription
)

type tasksLoadedMsg struct {
	tasks []domain.Task
	err   error
}

type mutationDoneMsg struct {
	op  Op
	id  string
	err error
}

// Model is the Bubble Tea model of the terminal client
type Model struct {
	ctx   context.Context
	api   TaskAPI
	log   *logging.Logger
	keys  keyMap
	state State

	spinner     spinner.Model
	help        help.Model
	title       textinput.Model
	description textinput.Model
	focus       focus
	cursor      int
	formErr     string
}

// NewModel creates a model that loads the task list on start
func NewModel(ctx context.Context, api TaskAPI, log *logging.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	title := textinput.New()
	title.Prompt = "> "
	title.Placeholder = "Enter task title"
	title.CharLimit = 0

	description := textinput.New()
	description.Prompt = "> "
	description.Placeholder = "Enter task description"
	description.CharLimit = 0

	m := Model{
		ctx:         ctx,
		api:         api,
		log:         log,
		keys:        defaultKeyMap(),
		spinner:     sp,
		help:        help.New(),
		title:       title,
		description: description,
	}
	m.state, _ = m.state.Apply(FetchRequested{})
	return m
}

// State returns the current state of the task list
func (m Model) State() State {
	return m.state
}

// Init starts the spinner and the initial fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

// Update handles one message
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		return m.handleLoaded(msg), nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			return m, tea.Quit
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateForm(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleLoaded(msg tasksLoadedMsg) Model {
	wasEditing := m.state.Editing()
	if msg.err != nil {
		m.log.Debugf("fetch tasks: %v", msg.err)
		m.state, _ = m.state.Apply(FetchFailed{Err: msg.err})
	} else {
		m.state, _ = m.state.Apply(FetchSucceeded{Tasks: msg.tasks})
	}
	if wasEditing && !m.state.Editing() {
		m.resetForm()
	}
	m.clampCursor()
	return m
}

func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Debugf("%s task %q: %v", msg.op, msg.id, msg.err)
		m.state, _ = m.state.Apply(MutationFailed{Op: msg.op, Err: msg.err})
		return m, nil
	}

	var ok bool
	m.state, ok = m.state.Apply(MutationSucceeded{Op: msg.op})
	if !ok {
		return m, nil
	}
	if msg.op == OpCreate || msg.op == OpUpdate {
		m.resetForm()
	}
	return m, m.fetch()
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m.mutate(OpToggle, task.ID, func(ctx context.Context) error {
			_, err := m.api.UpdateTask(ctx, task.ID, domain.TaskPatch{Completed: domain.BoolPtr(!task.Completed)})
			return err
		})

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m.mutate(OpDelete, task.ID, func(ctx context.Context) error {
			return m.api.DeleteTask(ctx, task.ID)
		})

	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		var accepted bool
		if m.state, accepted = m.state.Apply(EditStarted{ID: task.ID}); !accepted {
			return m, nil
		}
		m.formErr = ""
		m.title.SetValue(task.Title)
		m.title.CursorEnd()
		m.description.SetValue(task.Description)
		return m, m.focusOn(focusTitle)

	case key.Matches(msg, m.keys.Add):
		m.formErr = ""
		return m, m.focusOn(focusTitle)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.state.Editing() {
			m.state, _ = m.state.Apply(EditCancelled{})
			m.resetForm()
		}
		m.formErr = ""
		return m, m.focusOn(focusList)

	case key.Matches(msg, m.keys.Next):
		if m.focus == focusTitle {
			return m, m.focusOn(focusDescription)
		}
		return m, m.focusOn(focusTitle)

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}
	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	m.title, cmds[0] = m.title.Update(msg)
	m.description, cmds[1] = m.description.Update(msg)
	return m, tea.Batch(cmds[:]...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.title.Value())
	description := strings.TrimSpace(m.description.Value())
	if title == "" {
		m.formErr = "Title is required."
		return m, nil
	}
	m.formErr = ""

	if m.state.Editing() {
		id := m.state.EditingID
		return m.mutate(OpUpdate, id, func(ctx context.Context) error {
			_, err := m.api.UpdateTask(ctx, id, domain.TaskPatch{
				Title:       domain.StringPtr(title),
				Description: domain.StringPtr(description),
			})
			return err
		})
	}
	return m.mutate(OpCreate, "", func(ctx context.Context) error {
		_, err := m.api.CreateTask(ctx, domain.NewTask{Title: title, Description: description})
		return err
	})
}

// mutate starts op unless another request is in flight
func (m Model) mutate(op Op, id string, call func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	var ok bool
	if m.state, ok = m.state.Apply(MutationRequested{Op: op}); !ok {
		return m, nil
	}
	ctx := m.ctx
	return m, func() tea.Msg {
		return mutationDoneMsg{op: op, id: id, err: call(ctx)}
	}
}

func (m Model) fetch() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		tasks, err := api.ListTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m *Model) focusOn(f focus) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.description.Blur()
	switch f {
	case focusTitle:
		return m.title.Focus()
	case focusDescription:
		return m.description.Focus()
	}
	return nil
}

func (m *Model) resetForm() {
	m.title.SetValue("")
	m.description.SetValue("")
	m.formErr = ""
	m.focusOn(focusList)
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Tasks) {
		m.cursor = len(m.state.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Tasks) {
		return domain.Task{}, false
	}
	return m.state.Tasks[m.cursor], true
}

// View renders the model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Task Manager"))
	b.WriteString("  ")
	b.WriteString(countStyle.Render(countLabel(len(m.state.Tasks))))
	b.WriteString("\n\n")

	b.WriteString(m.formView())
	b.WriteString("\n")

	if m.state.Banner != "" {
		b.WriteString(bannerStyle.Render(m.state.Banner))
		b.WriteString("\n")
	}

	if m.state.Phase == PhaseLoading {
		b.WriteString(m.spinner.View() + " Loading tasks...\n")
	} else {
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	bindings := m.keys.listHelp()
	if m.focus != focusList {
		bindings = m.keys.formHelp()
	}
	b.WriteString(m.help.ShortHelpView(bindings))
	return b.String()
}

func (m Model) formView() string {
	heading, action := "Add Task", "enter: Add Task"
	if m.state.Editing() {
		heading, action = "Edit Task", "enter: Update Task · esc: Cancel"
	}

	lines := []string{
		labelStyle.Render(heading),
		"Title",
		m.title.View(),
		"Description (optional)",
		m.description.View(),
	}
	if m.formErr != "" {
		lines = append(lines, errorStyle.Render(m.formErr))
	}
	if m.focus != focusList {
		lines = append(lines, helpStyle.Render(action))
	}

	style := panelStyle
	if m.focus != focusList {
		style = focusedPanelStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) listView() string {
	if len(m.state.Tasks) == 0 {
		return mutedStyle.Render(EmptyMessage) + "\n"
	}

	var b strings.Builder
	for i, task := range m.state.Tasks {
		b.WriteString(renderTask(task, i == m.cursor && m.focus == focusList))
	}
	return b.String()
}

func renderTask(task domain.Task, selected bool) string {
	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}

	box := mutedStyle.Render(boxUnchecked)
	title := task.Title
	badge := pendingBadge.Render(task.Status())
	if task.Completed {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
		badge = completedBadge.Render(task.Status())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s\n", prefix, box, title)
	if task.Description != "" {
		fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(task.Description))
	}
	fmt.Fprintf(&b, "    %s %s\n", badge, mutedStyle.Render(task.CreatedAt.Local().Format(dateFormat)))
	return b.String()
}

func countLabel(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}

// Run starts the terminal client and blocks until the user quits
func Run(ctx context.Context, api TaskAPI, log *logging.Logger) error {
	p := tea.NewProgram(NewModel(ctx, api, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
