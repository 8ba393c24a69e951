package adapter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"rhiza/internal/domain"
)

// ValidationError lists structural problems found in a payload
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid graph payload: " + strings.Join(e.Problems, "; ")
}

// Adapter validates and normalizes backend payloads
type Adapter struct {
	validate *validator.Validate
}

// New creates an adapter with its validation rules registered
func New() *Adapter {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("nodetype", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseNodeType(fl.Field().String())
		return ok
	})
	return &Adapter{validate: v}
}

var (
	defaultOnce    sync.Once
	defaultAdapter *Adapter
)

// Adapt converts a payload using a shared default adapter
func Adapt(p *domain.Payload) (*domain.Graph, error) {
	defaultOnce.Do(func() { defaultAdapter = New() })
	return defaultAdapter.Adapt(p)
}

// Adapt converts a raw payload into a graph.
// The returned graph is built once and is not modified afterwards.
func (a *Adapter) Adapt(p *domain.Payload) (*domain.Graph, error) {
	if p == nil || len(p.Nodes) == 0 {
		return nil, domain.ErrEmptyGraph
	}
	rawLinks := p.AllLinks()

	if err := a.checkStructure(p.Nodes, rawLinks); err != nil {
		return nil, err
	}

	nodes := make([]domain.Node, 0, len(p.Nodes))
	seen := make(map[string]struct{}, len(p.Nodes))
	words := 0
	for _, rn := range p.Nodes {
		if _, dup := seen[rn.ID]; dup {
			return nil, &domain.DataIntegrityError{Kind: domain.DuplicateID, Ref: rn.ID}
		}
		seen[rn.ID] = struct{}{}

		n := normalizeNode(rn)
		if n.Type == domain.NodeTypeWord {
			words++
		}
		nodes = append(nodes, n)
	}
	if words != 1 {
		return nil, &domain.DataIntegrityError{Kind: domain.WordCount, N: words}
	}

	links := make([]domain.Link, 0, len(rawLinks))
	for i, rl := range rawLinks {
		if _, ok := seen[rl.Source]; !ok {
			return nil, &domain.DataIntegrityError{Kind: domain.DanglingReference, Ref: rl.Source, Role: "source", Link: i}
		}
		if _, ok := seen[rl.Target]; !ok {
			return nil, &domain.DataIntegrityError{Kind: domain.DanglingReference, Ref: rl.Target, Role: "target", Link: i}
		}
		l, err := normalizeLink(rl)
		if err != nil {
			return nil, &ValidationError{Problems: []string{fmt.Sprintf("links[%d].%s", i, err)}}
		}
		links = append(links, l)
	}

	return domain.NewGraph(nodes, links), nil
}

func (a *Adapter) checkStructure(nodes []domain.RawNode, links []domain.RawLink) error {
	var problems []string
	for i := range nodes {
		if err := a.validate.Struct(&nodes[i]); err != nil {
			problems = append(problems, describe(fmt.Sprintf("nodes[%d]", i), err)...)
		}
	}
	for i := range links {
		if err := a.validate.Struct(&links[i]); err != nil {
			problems = append(problems, describe(fmt.Sprintf("links[%d]", i), err)...)
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func describe(prefix string, err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{prefix + ": " + err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s.%s is required", prefix, strings.ToLower(fe.Field())))
		case "nodetype":
			out = append(out, fmt.Sprintf("%s.type %q is not a known node type", prefix, fe.Value()))
		default:
			out = append(out, fmt.Sprintf("%s.%s failed %s", prefix, strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return out
}

func normalizeNode(rn domain.RawNode) domain.Node {
	nodeType, _ := domain.ParseNodeType(rn.Type)
	label := rn.Label
	if label == "" {
		label = rn.ID
	}
	props := rn.Properties
	if props == nil {
		props = map[string]any{}
	}

	if nodeType == domain.NodeTypeRoot {
		return domain.NewRootNode(rn.ID, label, domain.RootDetails{
			Name:            stringProp(props, "name"),
			Transliteration: stringProp(props, "transliteration"),
			Meaning:         stringProp(props, "meaning"),
			Category:        stringProp(props, "category"),
			Frequency:       domain.Frequency(stringProp(props, "frequency")),
			PartOfSpeech:    domain.PartOfSpeech(stringProp(props, "part_of_speech")),
			EtymologyNotes:  stringProp(props, "etymology_notes"),
		})
	}

	n := domain.NewWordNode(rn.ID, label, nodeType)
	if name := stringProp(props, "name"); name != "" {
		n.Word.Name = name
	}
	return n
}

func normalizeLink(rl domain.RawLink) (domain.Link, error) {
	l := domain.Link{Source: rl.Source, Target: rl.Target, Type: rl.Type}
	if s, ok := floatProp(rl.Properties, "strength"); ok {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return l, fmt.Errorf("strength %v is not a finite number", s)
		}
		s = min(max(s, 0), 1)
		l.Strength = &s
	}
	return l, nil
}

func stringProp(props map[string]any, key string) string {
	switch v := props[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return v.String()
	}
	return ""
}

func floatProp(props map[string]any, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}
