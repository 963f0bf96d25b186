package value

// Tag records how a value was normalized to text.
type Tag string

const (
	// TagText marks a value that was already text.
	TagText Tag = "str"
	// TagUTF8 marks binary data that was valid UTF-8.
	TagUTF8 Tag = "utf-8"
	// TagBase64 marks binary data carried as standard base64.
	TagBase64 Tag = "base64"
	// TagLatin1 marks binary data carried as ISO-8859-1 decoded text.
	TagLatin1 Tag = "iso-8859-1"
	// TagLiteral marks a structured value carried in its literal form.
	TagLiteral Tag = "literal"
)

// Known reports whether t is one of the tags produced by Encode.
func (t Tag) Known() bool {
	switch t {
	case TagText, TagUTF8, TagBase64, TagLatin1, TagLiteral:
		return true
	default:
		return false
	}
}
