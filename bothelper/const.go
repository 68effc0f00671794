package bothelper

const (
	// TimeFormatLogger const
	TimeFormatLogger = "2006/01/02 15:04:05"

	// TimeFormatBotServer layout of timestamps sent by the bot server
	TimeFormatBotServer = "2006-01-02T15:04:05.000Z0700"

	// Byte ...
	Byte uint64 = 1
	// KByte ...
	KByte = Byte * 1024
	// MByte ...
	MByte = KByte * 1024

	// WORKDIR const for workdir environment
	WORKDIR = "WORKDIR"
)
