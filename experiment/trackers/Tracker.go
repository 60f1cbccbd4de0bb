// Package trackers implements Trackers, which track data generated
// during an experiment and optionally save it to disk
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/gprl/timestep"
	"gonum.org/v1/gonum/stat"
)

// Tracker keeps track of experiment data. Track is called with every
// TimeStep of an experiment, in order.
type Tracker interface {
	Track(t ts.TimeStep)
}

// Recorder is a Tracker which records a series of data
type Recorder interface {
	Tracker

	// Data returns a copy of the data tracked so far
	Data() []float64
}

// Saver is a Recorder which can save its data to disk
type Saver interface {
	Recorder
	Save() error
}

// save gob encodes data to filename
func save(filename string, data interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("save: could not encode data: %v", err)
	}
	return nil
}

// LoadData loads and returns the data saved by a Saver
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %v", err)
	}
	defer file.Close()

	var data []float64
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %v", err)
	}
	return data, nil
}

// Summary returns the mean and standard deviation of the last n values
// of data, or of all values if n <= 0 or n > len(data)
func Summary(data []float64, n int) (mean, std float64) {
	if n > 0 && n < len(data) {
		data = data[len(data)-n:]
	}
	if len(data) == 0 {
		return 0, 0
	}
	if len(data) == 1 {
		return data[0], 0
	}
	return stat.MeanStdDev(data, nil)
}
