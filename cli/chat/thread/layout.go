package thread

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/timoelan/crudai/cli/chat/styles"
	"github.com/timoelan/crudai/internal/debug"
)

// recalculateLayout resizes the viewport and textarea for the current pane
// dimensions and re-renders the thread content.
func (m *Model) recalculateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	textareaWidth := m.width - styles.TextAreaStyle.GetHorizontalFrameSize()
	if textareaWidth < 10 {
		textareaWidth = 10
	}
	m.textarea.SetWidth(textareaWidth)
	m.adjustTextareaHeight()

	contentWidth := m.messageWidth()
	if err := m.renderer.SetWidth(contentWidth); err != nil {
		// Keep rendering at the previous width rather than breaking the
		// pane over a resize.
		debug.GetLogger().Warn("resizing markdown renderer", "error", err)
	}

	inputHeight := m.textarea.Height() + styles.InputBorderHeight + 1 // help line
	errHeight := 0
	if m.err != nil {
		errHeight = 1
	}
	viewportHeight := m.height - styles.HeaderHeight - inputHeight - errHeight
	if viewportHeight < styles.MinViewportHeight {
		viewportHeight = styles.MinViewportHeight
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewportHeight
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderEntries())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// adjustTextareaHeight grows the textarea with its content, between the
// min and max heights.
func (m *Model) adjustTextareaHeight() {
	lines := strings.Count(m.textarea.Value(), "\n") + 1
	if lines < styles.MinTextareaHeight {
		lines = styles.MinTextareaHeight
	}
	if lines > styles.MaxTextareaHeight {
		lines = styles.MaxTextareaHeight
	}
	if m.textarea.Height() != lines {
		m.textarea.SetHeight(lines)
	}
}
