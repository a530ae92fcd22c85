package index

import "github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"

// decodeRelations parses the rela chunk: a varint count of fixed-shape
// (subject, predicate, object) triples.
func decodeRelations(payload []byte) ([]Relation, error) {
	c := newCursor(payload)
	count, err := c.varint()
	if err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading rela chunk count")
	}

	relations := make([]Relation, 0, count)
	for i := uint32(0); i < count; i++ {
		subject, err := c.symbolID()
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decoding relation %d subject", i)
		}
		predicate, err := c.byte()
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decoding relation %d predicate", i)
		}
		object, err := c.symbolID()
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decoding relation %d object", i)
		}
		relations = append(relations, Relation{Subject: subject, Predicate: RelationPredicate(predicate), Object: object})
	}
	return relations, nil
}
