package domain

// DefaultChannel is used when a join carries no channel code.
const DefaultChannel ChannelCode = "DEFAULT"

type ChannelCode string

// ResolveChannelCode maps an absent code to DefaultChannel.
func ResolveChannelCode(raw string) ChannelCode {
	if raw == "" {
		return DefaultChannel
	}
	return ChannelCode(raw)
}
