package registry

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fae/pkg/types"
)

// Decoder parses the content of one script file. file is only used to
// label warnings.
type Decoder func(data []byte, file string) (types.Registry, []Warning, error)

// Formats maps lower-case file extensions, dot included, to decoders
var Formats Table[Decoder]

func init() {
	Formats = NewTable[Decoder]()
	MustRegister(Formats, ".toml", DecodeTOML)
	MustRegister(Formats, ".yaml", DecodeYAML)
	MustRegister(Formats, ".yml", DecodeYAML)
}

// DecoderFor returns the decoder for path's extension
func DecoderFor(path string) (Decoder, bool) {
	return Formats.Get(strings.ToLower(filepath.Ext(path)))
}
