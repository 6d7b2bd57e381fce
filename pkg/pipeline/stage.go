package pipeline

import "fmt"

// Stage names one step of processing a prompt file.
type Stage string

const (
	StageLoad    Stage = "load"
	StageRender  Stage = "render"
	StageInfer   Stage = "infer"
	StagePersist Stage = "persist"
	StagePublish Stage = "publish"
)

// StageError reports the prompt file and stage a run stopped at.
type StageError struct {
	Stage Stage
	File  string
	Err   error
}

func (e *StageError) Error() string {
	if e == nil {
		return "stage error"
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.File, e.Err)
}

func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func stageError(stage Stage, file string, err error) error {
	return &StageError{Stage: stage, File: file, Err: err}
}
