package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestDecodeClientFrame(t *testing.T) {
	t.Parallel()

	wrongField := protowire.AppendTag(nil, 2, protowire.BytesType)
	wrongField = protowire.AppendString(wrongField, "data:,")
	wrongType := protowire.AppendTag(nil, drawingFieldNumber, protowire.VarintType)
	wrongType = protowire.AppendVarint(wrongType, 7)
	truncated := drawingFrame("data:image/png;base64,AAAA")
	truncated = truncated[:len(truncated)-2]

	testCases := []struct {
		desc       string
		frame      []byte
		ok         bool
		packetType string
		raster     string
		drawing    bool
	}{
		{desc: "empty", frame: nil},
		{desc: "json setReady", frame: []byte(`{"type":"setReady","data":{"ready":true}}`), ok: true, packetType: EventSetReady},
		{desc: "json without type", frame: []byte(`{"data":{}}`)},
		{desc: "broken json", frame: []byte(`{"type"`)},
		{
			desc:       "json drawing action",
			frame:      []byte(`{"type":"drawingAction","data":{"raster":"data:,x"}}`),
			ok:         true,
			packetType: EventDrawingAction,
			raster:     "data:,x",
			drawing:    true,
		},
		{desc: "json drawing action with bad data", frame: []byte(`{"type":"drawingAction","data":[1]}`)},
		{
			desc:       "binary drawing frame",
			frame:      drawingFrame("data:image/png;base64,AAAA"),
			ok:         true,
			packetType: EventDrawingAction,
			raster:     "data:image/png;base64,AAAA",
			drawing:    true,
		},
		{desc: "binary wrong field", frame: wrongField},
		{desc: "binary wrong wire type", frame: wrongType},
		{desc: "binary truncated", frame: truncated},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			envelope, ok := decodeClientFrame(tc.frame)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			assert.Equal(t, tc.packetType, envelope.packet.Type)
			assert.Equal(t, tc.raster, envelope.raster)
			assert.Equal(t, tc.drawing, envelope.isDrawingFrame())
		})
	}
}

func TestEncodePacket(t *testing.T) {
	t.Parallel()

	assert.JSONEq(t,
		`{"type":"playerLeft","data":{"playerId":"p1"}}`,
		string(encodePacket(EventPlayerLeft, playerIdData{PlayerId: "p1"})),
	)
	assert.JSONEq(t, `{"type":"gameClosed"}`, string(encodePacket(EventGameClosed, nil)))
	assert.Nil(t, encodePacket(EventGameEnded, json.RawMessage(`{`)))
}
