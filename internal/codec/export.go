package codec

import "rhiza/internal/domain"

// toPayload flattens an adapted graph back into the backend payload shape.
// Root details and link strengths return to properties so the output adapts
// to the same graph.
func toPayload(graph *domain.Graph) *domain.Payload {
	p := &domain.Payload{
		Nodes: make([]domain.RawNode, 0, len(graph.Nodes)),
		Links: make([]domain.RawLink, 0, len(graph.Links)),
	}

	for _, node := range graph.Nodes {
		rn := domain.RawNode{
			ID:         node.ID,
			Type:       string(node.Type),
			Label:      node.Label,
			Properties: rootProperties(node.Root),
		}
		if node.Word != nil && node.Word.Name != node.Label {
			rn.Properties = map[string]any{"name": node.Word.Name}
		}
		p.Nodes = append(p.Nodes, rn)
	}

	for _, link := range graph.Links {
		rl := domain.RawLink{
			Source: link.Source,
			Target: link.Target,
			Type:   link.Type,
		}
		if link.Strength != nil {
			rl.Properties = map[string]any{"strength": *link.Strength}
		}
		p.Links = append(p.Links, rl)
	}

	return p
}

func rootProperties(d *domain.RootDetails) map[string]any {
	if d == nil {
		return nil
	}
	props := make(map[string]any)
	set := func(key, value string) {
		if value != "" {
			props[key] = value
		}
	}
	set("name", d.Name)
	set("transliteration", d.Transliteration)
	set("meaning", d.Meaning)
	set("category", d.Category)
	set("frequency", string(d.Frequency))
	set("part_of_speech", string(d.PartOfSpeech))
	set("etymology_notes", d.EtymologyNotes)
	if len(props) == 0 {
		return nil
	}
	return props
}
