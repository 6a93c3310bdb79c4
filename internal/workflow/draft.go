package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	dErrors "regwise/pkg/domain-errors"
)

// Saver persists a replacement onboarding step list for one country. The
// write is wholesale: the stored list is overwritten, with no merge.
type Saver interface {
	SaveOnboarding(ctx context.Context, code string, steps []Step) error
}

// Draft holds an in-progress edit of a workflow, separate from the last-saved
// copy. It lives in memory for the duration of one edit session; nothing is
// persisted until Save. Draft is not safe for concurrent use.
type Draft struct {
	code       string
	saved      Workflow
	current    Workflow
	editing    bool
	lastStepID int64
}

// NewDraft starts an edit session over the given saved workflow.
func NewDraft(code string, saved Workflow) *Draft {
	return &Draft{
		code:    code,
		saved:   cloneWorkflow(saved),
		current: cloneWorkflow(saved),
		editing: true,
	}
}

// Editing reports whether the draft is still in edit mode.
func (d *Draft) Editing() bool { return d.editing }

// Workflow returns the current draft state.
func (d *Draft) Workflow() Workflow { return cloneWorkflow(d.current) }

// Steps returns the current draft step list.
func (d *Draft) Steps() []Step { return cloneSteps(d.current.Steps) }

// AddStep appends a new step with a generated id and the next step number.
// The id suffix is a millisecond timestamp, bumped when two adds land in the
// same millisecond; it avoids collisions within a session, nothing more.
func (d *Draft) AddStep() Step {
	suffix := time.Now().UnixMilli()
	if suffix <= d.lastStepID {
		suffix = d.lastStepID + 1
	}
	d.lastStepID = suffix

	step := Step{
		ID:         fmt.Sprintf("%s-step-%d", d.code, suffix),
		StepNumber: len(d.current.Steps) + 1,
		Title:      "New Step",
		Required:   false,
		Documents:  []string{},
		Conditions: []string{},
	}
	d.current.Steps = append(d.current.Steps, step)
	return step
}

// DeleteStep removes the step with the given id and renumbers the remaining
// steps to stay contiguous from 1, preserving relative order.
func (d *Draft) DeleteStep(id string) error {
	steps := d.current.Steps[:0:0]
	found := false
	for _, s := range d.current.Steps {
		if s.ID == id {
			found = true
			continue
		}
		steps = append(steps, s)
	}
	if !found {
		return dErrors.Newf(dErrors.CodeNotFound, "step %s not found", id)
	}
	for i := range steps {
		steps[i].StepNumber = i + 1
	}
	d.current.Steps = steps
	return nil
}

// UpdateStepField replaces a single field on the step with the given id.
// Values are coerced at this boundary only: list fields accept comma-separated
// text, required accepts bool-ish strings. No further validation is applied.
func (d *Draft) UpdateStepField(id, field, value string) error {
	for i := range d.current.Steps {
		if d.current.Steps[i].ID != id {
			continue
		}
		s := &d.current.Steps[i]
		switch field {
		case "title":
			s.Title = value
		case "description":
			s.Description = value
		case "threshold":
			s.Threshold = value
		case "estimatedTime":
			s.EstimatedTime = value
		case "required":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return dErrors.Newf(dErrors.CodeValidation, "required must be a boolean, got %q", value)
			}
			s.Required = b
		case "documents":
			s.Documents = splitList(value)
		case "conditions":
			s.Conditions = splitList(value)
		default:
			return dErrors.Newf(dErrors.CodeValidation, "unknown step field %q", field)
		}
		return nil
	}
	return dErrors.Newf(dErrors.CodeNotFound, "step %s not found", id)
}

// Cancel discards the draft, reverting to the last-saved workflow, and exits
// edit mode.
func (d *Draft) Cancel() {
	d.current = cloneWorkflow(d.saved)
	d.editing = false
}

// Save persists the draft wholesale and exits edit mode. On failure the draft
// stays in edit mode so the caller can retry; there is no partial write.
func (d *Draft) Save(ctx context.Context, saver Saver) error {
	if err := saver.SaveOnboarding(ctx, d.code, d.current.Steps); err != nil {
		return err
	}
	d.saved = cloneWorkflow(d.current)
	d.editing = false
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func cloneSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = s
		out[i].Documents = append([]string(nil), s.Documents...)
		out[i].Conditions = append([]string(nil), s.Conditions...)
	}
	return out
}

func cloneWorkflow(wf Workflow) Workflow {
	wf.Steps = cloneSteps(wf.Steps)
	return wf
}
