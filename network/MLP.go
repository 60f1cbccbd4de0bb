// Package network implements feed forward neural networks with
// Gorgonia, used as function approximators for value functions
package network

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// MLP is a multi-layered perceptron with a single output, predicting
// one value for each of a batch of input feature vectors.
//
// The MLP only adds nodes to its computational graph. Running the graph
// (for example with a G.TapeMachine) is left to the caller, after which
// Output holds the predictions.
type MLP struct {
	g        *G.ExprGraph
	layers   []*fcLayer
	input    *G.Node
	features int
	batch    int

	prediction *G.Node
	predVal    G.Value
}

// NewMLP adds a new MLP to the graph g. The MLP takes batch feature
// vectors of size features as input. For each i, hiddenSizes[i] is the
// number of units in hidden layer i and activations[i] is its
// activation. A final linear layer with a single unit is always added.
// Weights are initialized using init.
func NewMLP(g *G.ExprGraph, features, batch int, hiddenSizes []int,
	activations []*Activation, init G.InitWFn) (*MLP, error) {
	if features <= 0 || batch <= 0 {
		return nil, fmt.Errorf("newMLP: features and batch size must be " +
			"positive")
	}
	if len(hiddenSizes) != len(activations) {
		return nil, fmt.Errorf("newMLP: invalid number of activations"+
			"\n\twant(%d)\n\thave(%d)", len(hiddenSizes), len(activations))
	}

	input := G.NewMatrix(
		g,
		tensor.Float64,
		G.WithShape(batch, features),
		G.WithName("input"),
		G.WithInit(G.Zeroes()),
	)

	layers := make([]*fcLayer, 0, len(hiddenSizes)+1)
	in := features
	for i, out := range hiddenSizes {
		if out <= 0 {
			return nil, fmt.Errorf("newMLP: hidden layer %d has %d units", i,
				out)
		}
		layers = append(layers, newFCLayer(g, in, out, i, init,
			activations[i]))
		in = out
	}
	layers = append(layers, newFCLayer(g, in, 1, len(hiddenSizes), init,
		Identity()))

	net := &MLP{
		g:        g,
		layers:   layers,
		input:    input,
		features: features,
		batch:    batch,
	}

	pred := input
	var err error
	for i, l := range net.layers {
		if pred, err = l.fwd(pred); err != nil {
			return nil, fmt.Errorf("newMLP: could not compute forward pass "+
				"of layer %v: %v", i, err)
		}
	}
	net.prediction = pred
	G.Read(net.prediction, &net.predVal)

	return net, nil
}

// Graph returns the computational graph of the MLP
func (m *MLP) Graph() *G.ExprGraph {
	return m.g
}

// Features returns the size of a single input feature vector
func (m *MLP) Features() int {
	return m.features
}

// BatchSize returns the number of feature vectors in one input batch
func (m *MLP) BatchSize() int {
	return m.batch
}

// SetInput sets the input batch of the MLP in row major order
func (m *MLP) SetInput(input []float64) error {
	if len(input) != m.features*m.batch {
		return fmt.Errorf("setInput: invalid number of inputs\n\twant(%v)"+
			"\n\thave(%v)", m.features*m.batch, len(input))
	}
	inputTensor := tensor.New(
		tensor.WithBacking(input),
		tensor.WithShape(m.input.Shape()...),
	)
	return G.Let(m.input, inputTensor)
}

// Learnables returns the learnable nodes of the MLP
func (m *MLP) Learnables() G.Nodes {
	learnables := make(G.Nodes, 0, 2*len(m.layers))
	for _, l := range m.layers {
		learnables = append(learnables, l.learnables()...)
	}
	return learnables
}

// Model returns the learnable nodes of the MLP with their gradients
func (m *MLP) Model() []G.ValueGrad {
	return G.NodesToValueGrads(m.Learnables())
}

// Prediction returns the node holding the predictions of the MLP, of
// shape (batch, 1)
func (m *MLP) Prediction() *G.Node {
	return m.prediction
}

// Output returns the predictions of the last run of the graph
func (m *MLP) Output() []float64 {
	if m.predVal == nil {
		return nil
	}
	return m.predVal.Data().([]float64)
}

// Set sets the weights of dest to be equal to the weights of source.
// Both MLPs must have the same architecture.
func (dest *MLP) Set(source *MLP) error {
	sourceNodes := source.Learnables()
	nodes := dest.Learnables()
	if len(nodes) != len(sourceNodes) {
		return fmt.Errorf("set: invalid number of learnables\n\twant(%v)"+
			"\n\thave(%v)", len(nodes), len(sourceNodes))
	}

	for i, destLearnable := range nodes {
		if !destLearnable.Shape().Eq(sourceNodes[i].Shape()) {
			return fmt.Errorf("set: learnable %v has shape %v, source has %v",
				destLearnable.Name(), destLearnable.Shape(),
				sourceNodes[i].Shape())
		}
		weights, ok := destLearnable.Value().Data().([]float64)
		if !ok {
			return fmt.Errorf("set: learnable %v is not float64",
				destLearnable.Name())
		}
		sourceWeights, ok := sourceNodes[i].Value().Data().([]float64)
		if !ok {
			return fmt.Errorf("set: source learnable %v is not float64",
				sourceNodes[i].Name())
		}
		copy(weights, sourceWeights)
	}
	return nil
}
