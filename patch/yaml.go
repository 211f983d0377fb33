package patch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlPatch mirrors the teacher's YAMLCoreProgram/ArrayConfig split
// (core/program.go): a plain tagged struct tree that yaml.Unmarshal
// fills directly, then a conversion step builds the real domain types.
// Unlike the teacher's loader, errors are returned, never panicked —
// spec.md §7 requires patch loading to fail as a diagnostic-producing
// result, not a crash.
type yamlPatch struct {
	Blocks []yamlBlock `yaml:"blocks"`
	Edges  []yamlEdge  `yaml:"edges"`
}

type yamlBlock struct {
	ID          string                   `yaml:"id"`
	Type        string                   `yaml:"type"`
	DisplayName string                   `yaml:"displayName"`
	Params      map[string]any           `yaml:"params"`
	InputPorts  map[string]yamlInputPort `yaml:"inputPorts"`
}

type yamlInputPort struct {
	DefaultSource *yamlDefaultSource `yaml:"defaultSource"`
	CombineMode   string             `yaml:"combineMode"`

	IsVararg          bool                    `yaml:"isVararg"`
	VarargConstraint  *yamlVarargConstraint   `yaml:"varargConstraint"`
	VarargConnections []yamlVarargConnection  `yaml:"varargConnections"`
}

type yamlDefaultSource struct {
	BlockType string `yaml:"blockType"`
	OutputID  string `yaml:"outputId"`
}

type yamlVarargConstraint struct {
	PayloadType    string `yaml:"payloadType"`
	MinConnections int    `yaml:"minConnections"`
	MaxConnections int    `yaml:"maxConnections"`
}

type yamlVarargConnection struct {
	SourceAddress string  `yaml:"sourceAddress"`
	SortKey       float64 `yaml:"sortKey"`
}

type yamlEdge struct {
	FromBlock string  `yaml:"fromBlock"`
	FromPort  string  `yaml:"fromPort"`
	ToBlock   string  `yaml:"toBlock"`
	ToPort    string  `yaml:"toPort"`
	SortKey   float64 `yaml:"sortKey"`
}

// LoadFromYAML reads and parses a patch file, converting it into a
// Patch. It is the Oscilla counterpart to the teacher's
// LoadProgramFileFromYAML, reshaped to load a signal graph instead of
// a per-core instruction program.
func LoadFromYAML(path string) (*Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("patch: reading %q: %w", path, err)
	}
	return ParseYAML(data)
}

// ParseYAML parses patch YAML already read into memory, for embedded
// fixtures (cmd/oscillac) and tests alike.
func ParseYAML(data []byte) (*Patch, error) {
	var doc yamlPatch
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("patch: parsing YAML: %w", err)
	}

	p := &Patch{}

	for _, yb := range doc.Blocks {
		b := Block{
			ID:          yb.ID,
			Type:        yb.Type,
			DisplayName: yb.DisplayName,
			Params:      yb.Params,
			InputPorts:  make(map[string]InputPortConfig, len(yb.InputPorts)),
			OutputPorts: make(map[string]OutputPortConfig),
			Role:        BlockRole{Kind: RoleUser},
		}
		if b.Params == nil {
			b.Params = map[string]any{}
		}
		for portID, yp := range yb.InputPorts {
			cfg := InputPortConfig{
				CombineMode: CombineMode(yp.CombineMode),
				IsVararg:    yp.IsVararg,
			}
			if yp.DefaultSource != nil {
				cfg.DefaultSource = &DefaultSource{
					BlockType: yp.DefaultSource.BlockType,
					OutputID:  yp.DefaultSource.OutputID,
				}
			}
			if yp.VarargConstraint != nil {
				cfg.VarargConstraint = &VarargConstraint{
					PayloadType:    yp.VarargConstraint.PayloadType,
					MinConnections: yp.VarargConstraint.MinConnections,
					MaxConnections: yp.VarargConstraint.MaxConnections,
				}
			}
			for _, yc := range yp.VarargConnections {
				cfg.VarargConnections = append(cfg.VarargConnections, VarargConnectionSpec{
					SourceAddress: yc.SourceAddress,
					SortKey:       yc.SortKey,
				})
			}
			b.InputPorts[portID] = cfg
		}
		p.Blocks = append(p.Blocks, b)
	}

	for i, ye := range doc.Edges {
		p.Edges = append(p.Edges, Edge{
			ID:      fmt.Sprintf("edge_%d", i),
			From:    PortAddress{BlockID: ye.FromBlock, PortID: ye.FromPort},
			To:      PortAddress{BlockID: ye.ToBlock, PortID: ye.ToPort},
			Enabled: true,
			SortKey: ye.SortKey,
			Role:    EdgeUser,
		})
	}

	return p, nil
}
