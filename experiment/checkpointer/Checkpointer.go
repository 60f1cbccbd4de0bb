// Package checkpointer implements Checkpointers, which save snapshots
// of learned objects, such as an Actor's policy, during an experiment
package checkpointer

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/gprl/timestep"
)

// Serializable is an object that can be saved and restored
type Serializable interface {
	gob.GobEncoder
	gob.GobDecoder
}

// Checkpointer checkpoints serializable objects based on the
// TimeSteps of an experiment
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}

// Save gob encodes object to filename
func Save(filename string, object Serializable) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %v", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(object); err != nil {
		return fmt.Errorf("save: could not encode: %v", err)
	}
	return nil
}

// Load decodes into object the data saved to filename by Save
func Load(filename string, object Serializable) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(object); err != nil {
		return fmt.Errorf("load: could not decode: %v", err)
	}
	return nil
}
