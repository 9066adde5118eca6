package core_test

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/radiolink/internal/core"
	"github.com/stretchr/testify/require"
)

func TestSpeakerChanged_JSON(t *testing.T) {
	b, err := json.Marshal(core.SpeakerFree())
	require.NoError(t, err)
	require.JSONEq(t, `{"speakerId":null,"nickname":null}`, string(b))

	b, err = json.Marshal(core.SpeakerHeld("a", ""))
	require.NoError(t, err)
	require.JSONEq(t, `{"speakerId":"a","nickname":""}`, string(b))
}

func TestRelayed_JSON_UsesKindField(t *testing.T) {
	payload := json.RawMessage(`{"type":"offer","sdp":"v=0\r\n"}`)
	cases := map[core.SignalKind]string{
		core.SignalOffer:        "offer",
		core.SignalAnswer:       "answer",
		core.SignalICECandidate: "candidate",
	}
	for kind, field := range cases {
		b, err := json.Marshal(core.Relayed{Kind: kind, From: "a", Payload: payload})
		require.NoError(t, err)

		var got map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(b, &got))
		require.Len(t, got, 2)
		require.JSONEq(t, `"a"`, string(got["fromUserId"]))
		require.JSONEq(t, string(payload), string(got[field]))
	}
}

func TestRelayed_JSON_MissingPayloadOmitsField(t *testing.T) {
	b, err := json.Marshal(core.Relayed{Kind: core.SignalAnswer, From: "a"})
	require.NoError(t, err)
	require.JSONEq(t, `{"fromUserId":"a"}`, string(b))

	// An explicit null from the sender is passed through
	b, err = json.Marshal(core.Relayed{Kind: core.SignalAnswer, From: "a", Payload: json.RawMessage("null")})
	require.NoError(t, err)
	require.JSONEq(t, `{"fromUserId":"a","answer":null}`, string(b))
}

func TestSignalKind_Valid(t *testing.T) {
	require.True(t, core.SignalOffer.Valid())
	require.False(t, core.SignalKind("join-channel").Valid())
}
