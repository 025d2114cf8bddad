// Package tui is a terminal front-end for the review board.
package tui

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nfrund/reviewboard/internal/domain"
	"github.com/nfrund/reviewboard/internal/reviews"
)

const title = "WhatsApp Review Collector"

// fetchDoneMsg carries the result of the attempt numbered seq.
type fetchDoneMsg struct {
	seq     uint64
	reviews []domain.Review
	err     error
}

// Model renders one review view in the terminal.
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	fetcher reviews.Fetcher
	loc     *time.Location

	state reviews.State
	seq   uint64
	width int
}

// New creates a model whose fetches run under ctx. Quitting cancels them.
func New(ctx context.Context, fetcher reviews.Fetcher, loc *time.Location) Model {
	ctx, cancel := context.WithCancel(ctx)
	if loc == nil {
		loc = time.UTC
	}
	return Model{
		ctx:     ctx,
		cancel:  cancel,
		fetcher: fetcher,
		loc:     loc,
		state:   reviews.Initial(),
		seq:     1,
	}
}

// State returns the current view model.
func (m Model) State() reviews.State {
	return m.state
}

// Init starts the initialization fetch.
func (m Model) Init() tea.Cmd {
	return m.fetchCmd(m.seq)
}

func (m Model) fetchCmd(seq uint64) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		list, err := fetcher.FetchReviews(ctx)
		return fetchDoneMsg{seq: seq, reviews: list, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case "r":
			if m.state.Phase() != reviews.PhaseError {
				return m, nil
			}
			m.seq++
			m.state = m.state.Begin()
			return m, m.fetchCmd(m.seq)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case fetchDoneMsg:
		if msg.seq != m.seq || m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.state = m.state.Fail()
		} else {
			m.state = m.state.Succeed(msg.reviews)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString("Product reviews collected via WhatsApp messages\n\n")

	switch m.state.Phase() {
	case reviews.PhaseLoading:
		b.WriteString(reviews.LoadingText + "\n")
	case reviews.PhaseError:
		b.WriteString(m.state.Err + "\n\n")
		b.WriteString("[r] " + reviews.RetryLabel + "\n")
	case reviews.PhaseEmpty:
		b.WriteString(reviews.EmptyHeading + "\n")
		b.WriteString(reviews.EmptyHint + "\n")
	default:
		m.writeTable(&b)
	}

	b.WriteString("\n[q] quit\n")
	return b.String()
}

func (m Model) writeTable(b *strings.Builder) {
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER NAME\tPRODUCT\tREVIEW\tTIMESTAMP\tCONTACT")
	for _, r := range m.state.Reviews {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			oneLine(r.UserName),
			oneLine(r.ProductName),
			truncate(oneLine(r.ProductReview), m.reviewWidth()),
			reviews.FormatTimestamp(r.CreatedAt, m.loc),
			oneLine(r.ContactNumber),
		)
	}
	_ = tw.Flush()
}

// reviewWidth caps the review column so a row fits the terminal.
func (m Model) reviewWidth() int {
	if m.width <= 0 {
		return 48
	}
	return max(16, m.width-80)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, fetcher reviews.Fetcher, loc *time.Location, opts ...tea.ProgramOption) error {
	m := New(ctx, fetcher, loc)
	defer m.cancel()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
