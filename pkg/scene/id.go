package scene

import (
	"crypto/sha256"
	"encoding/hex"
)

// NodeID is a content-addressed identifier for scene nodes, derived
// from the label passed to NewNodeID. Callers are responsible for
// supplying distinct labels; the grower uses the node's path in the
// recursion tree.
type NodeID string

// ZeroID is the zero value of NodeID.
const ZeroID NodeID = ""

// NewNodeID derives a NodeID from a label string.
func NewNodeID(label string) NodeID {
	sum := sha256.Sum256([]byte(label))
	return NodeID(hex.EncodeToString(sum[:8]))
}

// Short returns an abbreviated form of the ID for log and error messages.
func (id NodeID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}
