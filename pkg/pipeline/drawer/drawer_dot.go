package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-arraytransformer/internal/store"
	"github.com/askiada/go-arraytransformer/pkg/pipeline/measure"
	"github.com/askiada/go-arraytransformer/pkg/pipeline/model"
)

// DOTDrawer is a drawer that writes the pipeline graph in the DOT language.
type DOTDrawer struct {
	mu       sync.Mutex
	graph    graph.Graph[string, string]
	store    *store.MemoryStore[string, string]
	parents  map[string]string
	fileName string
	wrt      io.Writer
}

// NewDOTDrawer creates a drawer writing the graph to the file fileName.
func NewDOTDrawer(fileName string) *DOTDrawer {
	d := newDOTDrawer()
	d.fileName = fileName
	return d
}

// NewDOTWriterDrawer creates a drawer writing the graph to wrt.
func NewDOTWriterDrawer(wrt io.Writer) *DOTDrawer {
	d := newDOTDrawer()
	d.wrt = wrt
	return d
}

func newDOTDrawer() *DOTDrawer {
	s := store.NewMemoryStore[string, string]()
	return &DOTDrawer{
		store:   s,
		graph:   graph.NewWithStore(graph.StringHash, graph.Store[string, string](s), graph.Directed(), graph.PreventCycles()),
		parents: make(map[string]string),
	}
}

// operationRGB gives every family of operations its own fill colour.
var operationRGB = map[string][3]uint8{
	"":              {220, 220, 220},
	"changeKeyCase": {255, 236, 179},
	"chunk":         {255, 236, 179},
	"column":        {255, 236, 179},
	"keys":          {255, 236, 179},
	"values":        {255, 236, 179},
	"diff":          {200, 230, 201},
	"intersect":     {200, 230, 201},
	"unique":        {200, 230, 201},
	"filter":        {187, 222, 251},
	"map":           {187, 222, 251},
	"mergeLeft":     {248, 187, 208},
	"mergeRight":    {248, 187, 208},
	"pad":           {248, 187, 208},
	"reverse":       {225, 190, 231},
	"slice":         {225, 190, 231},
}

// AddStep adds a step to the pipeline graph.
func (d *DOTDrawer) AddStep(name, operation string) error {
	rgb, ok := operationRGB[operation]
	if !ok {
		rgb = operationRGB[""]
	}
	fill, err := colors.RGB(rgb[0], rgb[1], rgb[2])
	if err != nil {
		return errors.Wrap(err, "unable to get colour")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	err = d.graph.AddVertex(name,
		graph.VertexAttribute("style", "filled"),
		graph.VertexAttribute("fillcolor", fill.ToHEX().String()),
	)
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	return nil
}

// RemoveStep removes a step from the pipeline graph. The step must have no link left.
func (d *DOTDrawer) RemoveStep(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.graph.RemoveVertex(name)
	if err != nil {
		return errors.Wrapf(err, "unable to remove vertex %s", name)
	}
	delete(d.parents, name)

	return nil
}

// AddLink adds a link between parent and child steps.
func (d *DOTDrawer) AddLink(parentName, childName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.graph.AddEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}
	d.parents[childName] = parentName

	return nil
}

// RemoveLink removes the link between parent and child steps.
func (d *DOTDrawer) RemoveLink(parentName, childName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.graph.RemoveEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to remove edge from %s to %s", parentName, childName)
	}
	if d.parents[childName] == parentName {
		delete(d.parents, childName)
	}

	return nil
}

// Draw writes the pipeline graph to the file or the writer of the drawer.
func (d *DOTDrawer) Draw() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.wrt != nil {
		return d.draw(d.wrt)
	}

	file, err := os.Create(d.fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.fileName)
	}
	defer file.Close()

	err = d.draw(file)
	if err != nil {
		return errors.Wrapf(err, "unable to write dot file %s", d.fileName)
	}

	return file.Close()
}

func (d *DOTDrawer) draw(wrt io.Writer) error {
	order, err := d.store.ListVertices()
	if err != nil {
		return errors.Wrap(err, "unable to list vertices")
	}

	return dot(d.graph, order, wrt, GraphAttribute("rankdir", "LR"))
}

// SetTotalTime sets the total time for the step.
func (d *DOTDrawer) SetTotalTime(stepName string, totalTime time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, properties, err := d.graph.VertexWithProperties(stepName)
	if err != nil {
		return errors.Wrapf(err, "unable to get %s vertex properties", stepName)
	}

	properties.Attributes["xlabel"] = totalTime.String()

	return nil
}

const maxRGB = 240

// AddMeasure labels each measured step with its average duration and sizes, and colours the edge
// leading to it from blue (fastest) to red (slowest).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	all := msr.AllMetrics()
	names := make([]string, 0, len(all))
	var minValue, maxValue time.Duration
	for name, mt := range all {
		if name == model.StartStep.Name || name == model.EndStep.Name || mt.Runs() == 0 {
			continue
		}
		avg := mt.AVGDuration()
		if len(names) == 0 || avg < minValue {
			minValue = avg
		}
		if len(names) == 0 || avg > maxValue {
			maxValue = avg
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mt := all[name]
		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}

		avg := mt.AVGDuration()
		inputLen, outputLen := mt.Sizes()
		properties.Attributes["xlabel"] = fmt.Sprintf("%s, %d → %d", avg, inputLen, outputLen)

		parent, ok := d.parents[name]
		if !ok {
			continue
		}

		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}
		red := maxRGB * fraction
		blue := maxRGB - red

		edgeColor, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		err = d.graph.UpdateEdge(parent, name,
			graph.EdgeAttribute("label", avg.String()),
			graph.EdgeAttribute("fontcolor", "blue"),
			graph.EdgeAttribute("color", edgeColor.ToHEX().String()),
		)
		if err != nil {
			return errors.Wrap(err, "unable to update edge")
		}
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(gra graph.Graph[string, string], order []string, wrt io.Writer, options ...func(*description)) error {
	desc, err := generateDOT(gra, order, options...)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

// GraphAttribute sets a graph level attribute of the drawing.
func GraphAttribute(key, value string) func(*description) {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

// generateDOT lists vertices in order, each followed by its outgoing edges sorted by target.
func generateDOT(gra graph.Graph[string, string], order []string, options ...func(*description)) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   make(map[string]string),
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for _, vertex := range order {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)
		sourceAttributes := make(map[string]string, len(sourceProperties.Attributes))
		for k, v := range sourceProperties.Attributes {
			sourceAttributes[k] = v
		}

		if xlabel, ok := sourceAttributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%+v <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, xlabel)

			delete(sourceAttributes, "xlabel")
		}

		stmt := statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		targets := make([]string, 0, len(adjacencyMap[vertex]))
		for target := range adjacencyMap[vertex] {
			targets = append(targets, target)
		}
		sort.Strings(targets)

		for _, target := range targets {
			edge := adjacencyMap[vertex][target]
			stmt := statement{
				Source:         vertex,
				Target:         target,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
