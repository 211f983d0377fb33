package diag

import "github.com/oscilla-sh/oscilla/addr"

// ActionKind is a closed set of fix-it variants (spec.md §4.8). Like
// the IR's expression/step nodes, dispatch on Kind is data-driven, not
// polymorphic — there is exactly one Action type with a tag, mirroring
// the teacher's registry-by-string-key pattern rather than an
// interface-per-variant hierarchy.
type ActionKind string

const (
	ActionGoToTarget     ActionKind = "goToTarget"
	ActionInsertBlock    ActionKind = "insertBlock"
	ActionRemoveBlock    ActionKind = "removeBlock"
	ActionAddAdapter     ActionKind = "addAdapter"
	ActionCreateTimeRoot ActionKind = "createTimeRoot"
	ActionMuteDiagnostic ActionKind = "muteDiagnostic"
	ActionOpenDocs       ActionKind = "openDocs"
)

// Position is an optional hint for where a block should be inserted
// in the authoring canvas. The UI/editor owns canvas layout; Oscilla
// only threads the hint through.
type Position struct {
	X, Y float64
}

// Action is a single serializable, replayable fix-it operation. Only
// the fields relevant to Kind are populated; the rest are zero.
type Action struct {
	Kind ActionKind

	Target addr.Address // ActionGoToTarget

	BlockType string    // ActionInsertBlock
	Position  *Position // ActionInsertBlock, optional

	BlockID string // ActionRemoveBlock

	FromPort    addr.Address // ActionAddAdapter
	AdapterType string       // ActionAddAdapter, ActionCreateTimeRoot (timeRootKind reuses this field)

	DiagnosticID string // ActionMuteDiagnostic

	URL string // ActionOpenDocs
}

func GoToTarget(target addr.Address) Action {
	return Action{Kind: ActionGoToTarget, Target: target}
}

func InsertBlock(blockType string, position *Position) Action {
	return Action{Kind: ActionInsertBlock, BlockType: blockType, Position: position}
}

func RemoveBlock(blockID string) Action {
	return Action{Kind: ActionRemoveBlock, BlockID: blockID}
}

func AddAdapter(from addr.Address, adapterType string) Action {
	return Action{Kind: ActionAddAdapter, FromPort: from, AdapterType: adapterType}
}

func CreateTimeRoot(kind string) Action {
	return Action{Kind: ActionCreateTimeRoot, AdapterType: kind}
}

func MuteDiagnostic(id string) Action {
	return Action{Kind: ActionMuteDiagnostic, DiagnosticID: id}
}

func OpenDocs(url string) Action {
	return Action{Kind: ActionOpenDocs, URL: url}
}
