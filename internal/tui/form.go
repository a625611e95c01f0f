package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/models"
)

// Form fields in tab order. The first four are single-line inputs.
const (
	fieldTitle = iota
	fieldCategory
	fieldDescription
	fieldCover
	fieldContent
	fieldCount
)

// fieldNames match the field names reported by blogs.ValidationError.
var fieldNames = [fieldCount]string{"title", "category", "description", "coverImage", "content"}

var fieldLabels = [fieldCount]string{"Title", "Category", "Description", "Cover image", "Content"}

// createForm is the state of the new post screen.
type createForm struct {
	keys    FormKeyMap
	inputs  [fieldContent]textinput.Model
	content textarea.Model
	focus   int

	flow       *blogs.CreateFlow
	submitting bool
	invalid    *blogs.ValidationError
	err        error
}

func newCreateForm(flow *blogs.CreateFlow) *createForm {
	f := &createForm{keys: DefaultFormKeyMap, flow: flow}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].Placeholder = "A headline worth reading"
	f.inputs[fieldCategory].Placeholder = strings.Join(models.Categories, ", ")
	f.inputs[fieldCategory].SetValue(models.Categories[0])
	f.inputs[fieldDescription].Placeholder = "One or two sentences shown in the list"
	f.inputs[fieldCover].Placeholder = "https://... or @path/to/image.png"

	ta := textarea.New()
	ta.Placeholder = "Write your post. Blank lines separate paragraphs."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	f.content = ta
	return f
}

// focusField focuses the current field and blurs the others.
func (f *createForm) focusField() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.content.Blur()
	if f.focus == fieldContent {
		return f.content.Focus()
	}
	return f.inputs[f.focus].Focus()
}

func (f *createForm) cycle(step int) tea.Cmd {
	f.focus = (f.focus + step + fieldCount) % fieldCount
	return f.focusField()
}

// update forwards msg to the focused field.
func (f *createForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == fieldContent {
		f.content, cmd = f.content.Update(msg)
		return cmd
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *createForm) setSize(width, height int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(width-18, 20)
	}
	f.content.SetWidth(max(width-4, 20))
	// Header, four inputs with their error lines, labels and status bar.
	f.content.SetHeight(max(height-16, 3))
}

func (f *createForm) draft() blogs.Draft {
	return blogs.Draft{
		Title:       f.inputs[fieldTitle].Value(),
		Category:    f.inputs[fieldCategory].Value(),
		Description: f.inputs[fieldDescription].Value(),
		CoverImage:  f.inputs[fieldCover].Value(),
		Content:     f.content.Value(),
	}
}

// fieldError is the validation message for field i, if any.
func (f *createForm) fieldError(i int) string {
	if f.invalid == nil {
		return ""
	}
	return f.invalid.Message(fieldNames[i])
}
