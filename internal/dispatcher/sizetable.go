package dispatcher

// Command codes recognized in the event stream.
const (
	CmdEventPayloads byte = 0x35
	CmdGameStart     byte = 0x36
	CmdPreFrame      byte = 0x37
	CmdPostFrame     byte = 0x38
	CmdGameEnd       byte = 0x39
	CmdFrameStart    byte = 0x3a
	CmdItemUpdate    byte = 0x3b
	CmdFrameBookend  byte = 0x3c
	CmdGeckoList     byte = 0x3d
	CmdMenuFrame     byte = 0x3e
)

// SizeTable maps a command code to its total record length, including
// the command byte. It is populated exclusively by the payload
// descriptor record at stream start; a zero entry means the command is
// unknown and cannot be sliced safely.
type SizeTable struct {
	sizes [256]int
}

// Set registers a command's declared payload length. The stored record
// length adds one for the command byte itself.
func (t *SizeTable) Set(cmd byte, declared uint16) {
	t.sizes[cmd] = int(declared) + 1
}

// Lookup returns the total record length for a command.
func (t *SizeTable) Lookup(cmd byte) (int, bool) {
	n := t.sizes[cmd]
	return n, n > 0
}
