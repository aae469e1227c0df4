package transfer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/transfer"
)

func TestRequiredEffect(t *testing.T) {
	cases := []struct {
		name         string
		stockApplied bool
		newStatus    string
		want         transfer.Effect
	}{
		{"entrar a transferred sin stock aplicado", false, entity.TransferStatusTransferred, transfer.EffectForward},
		{"repetir transferred con stock aplicado", true, entity.TransferStatusTransferred, transfer.EffectNone},
		{"salir de transferred con stock aplicado", true, entity.TransferStatusDraft, transfer.EffectReverse},
		{"volver a in_transit con stock aplicado", true, entity.TransferStatusInTransit, transfer.EffectReverse},
		{"draft a in_transit sin stock", false, entity.TransferStatusInTransit, transfer.EffectNone},
		{"in_transit a draft sin stock", false, entity.TransferStatusDraft, transfer.EffectNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, transfer.RequiredEffect(tc.stockApplied, tc.newStatus))
		})
	}
}

// El efecto se deriva del marcador, no del par de estados: un replay del mismo
// update es un no-op.
func TestRequiredEffect_ReplayEsIdempotente(t *testing.T) {
	// Primera transición a transferred: forward.
	assert.Equal(t, transfer.EffectForward, transfer.RequiredEffect(false, entity.TransferStatusTransferred))
	// Replay con el marcador ya fijado: nada.
	assert.Equal(t, transfer.EffectNone, transfer.RequiredEffect(true, entity.TransferStatusTransferred))
	// Reversa y su replay.
	assert.Equal(t, transfer.EffectReverse, transfer.RequiredEffect(true, entity.TransferStatusDraft))
	assert.Equal(t, transfer.EffectNone, transfer.RequiredEffect(false, entity.TransferStatusDraft))
}

func TestDeleteEffect(t *testing.T) {
	assert.Equal(t, transfer.EffectReverse, transfer.DeleteEffect(true))
	assert.Equal(t, transfer.EffectNone, transfer.DeleteEffect(false))
}

func TestValidateReceive(t *testing.T) {
	assert.NoError(t, transfer.ValidateReceive(entity.TransferStatusInTransit))

	err := transfer.ValidateReceive(entity.TransferStatusDraft)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "draft", "el rechazo debe nombrar el estado actual")

	err = transfer.ValidateReceive(entity.TransferStatusTransferred)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "transferred")
}

func TestEffectString(t *testing.T) {
	assert.Equal(t, "forward", transfer.EffectForward.String())
	assert.Equal(t, "reverse", transfer.EffectReverse.String())
	assert.Equal(t, "none", transfer.EffectNone.String())
}
