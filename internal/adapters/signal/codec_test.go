package signal

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/radiolink/internal/core"
	"github.com/dkeye/radiolink/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDecodeInbound_JoinChannel(t *testing.T) {
	ev, err := decodeInbound([]byte(`{"type":"join-channel","payload":{"nickname":"Alice","channelCode":"ABC"}}`))
	require.NoError(t, err)
	require.Equal(t, core.JoinChannel{Nickname: "Alice", ChannelCode: "ABC"}, ev)

	ev, err = decodeInbound([]byte(`{"type":"join-channel"}`))
	require.NoError(t, err)
	require.Equal(t, core.JoinChannel{}, ev)
}

func TestDecodeInbound_FloorEvents(t *testing.T) {
	ev, err := decodeInbound([]byte(`{"type":"request-speak"}`))
	require.NoError(t, err)
	require.Equal(t, core.RequestSpeak{}, ev)

	ev, err = decodeInbound([]byte(`{"type":"release-speak","payload":{}}`))
	require.NoError(t, err)
	require.Equal(t, core.ReleaseSpeak{}, ev)
}

func TestDecodeInbound_SignalsKeepPayloadBytes(t *testing.T) {
	cases := []struct {
		frame   string
		kind    core.SignalKind
		payload string
	}{
		{`{"type":"offer","payload":{"toUserId":"b","offer":{"type":"offer","sdp":"v=0\r\n"}}}`, core.SignalOffer, `{"type":"offer","sdp":"v=0\r\n"}`},
		{`{"type":"answer","payload":{"toUserId":"b","answer":{"sdp":"x",  "type":"answer"}}}`, core.SignalAnswer, `{"sdp":"x",  "type":"answer"}`},
		{`{"type":"ice-candidate","payload":{"toUserId":"b","candidate":{"candidate":"candidate:1 1 udp 1 192.0.2.1 9 typ host","sdpMid":"0"}}}`, core.SignalICECandidate, `{"candidate":"candidate:1 1 udp 1 192.0.2.1 9 typ host","sdpMid":"0"}`},
	}
	for _, tc := range cases {
		ev, err := decodeInbound([]byte(tc.frame))
		require.NoError(t, err)
		sr, ok := ev.(core.SignalRequest)
		require.True(t, ok)
		require.Equal(t, tc.kind, sr.Kind)
		require.Equal(t, domain.ConnectionID("b"), sr.To)
		require.Equal(t, tc.payload, string(sr.Payload))
	}
}

func TestDecodeInbound_Errors(t *testing.T) {
	_, err := decodeInbound([]byte(`{"type":"disconnect"}`))
	require.ErrorIs(t, err, ErrUnknownEvent)

	_, err = decodeInbound([]byte(`not json`))
	require.Error(t, err)

	_, err = decodeInbound([]byte(`{"type":"offer","payload":{"toUserId":42}}`))
	require.Error(t, err)

	_, err = decodeInbound([]byte(`{"type":"join-channel","payload":[1,2]}`))
	require.Error(t, err)
}

func TestEncodeOutbound(t *testing.T) {
	b, err := EncodeOutbound(core.Welcome{UserID: "a", Users: []domain.Member{{ID: "b", Nickname: "Bob"}}, ChannelCode: "ABC"})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"welcome","payload":{"userId":"a","users":[{"id":"b","nickname":"Bob"}],"channelCode":"ABC"}}`, string(b))

	b, err = EncodeOutbound(core.SpeakerFree())
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"speaker-changed","payload":{"speakerId":null,"nickname":null}}`, string(b))

	b, err = EncodeOutbound(core.UserLeft{UserID: "a"})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"user-left","payload":{"userId":"a"}}`, string(b))

	b, err = EncodeOutbound(core.Relayed{Kind: core.SignalICECandidate, From: "a", Payload: json.RawMessage(`{"candidate":"c"}`)})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"ice-candidate","payload":{"fromUserId":"a","candidate":{"candidate":"c"}}}`, string(b))
}
