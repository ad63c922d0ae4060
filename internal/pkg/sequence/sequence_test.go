package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		existing []string
		want     string
	}{
		{name: "empty", prefix: "QT", existing: nil, want: "QT-0001"},
		{name: "gap uses max", prefix: "QT", existing: []string{"QT-0001", "QT-0003"}, want: "QT-0004"},
		{name: "unordered", prefix: "INV", existing: []string{"INV-0009", "INV-0002"}, want: "INV-0010"},
		{name: "malformed counts as zero", prefix: "QT", existing: []string{"garbage", "QT-0005", "QT-abc"}, want: "QT-0006"},
		{name: "only malformed", prefix: "QT", existing: []string{"QT-", "x"}, want: "QT-0001"},
		{name: "other prefix ignored", prefix: "INV", existing: []string{"QT-0040", "INV-0001"}, want: "INV-0002"},
		{name: "negative ignored", prefix: "QT", existing: []string{"QT--7"}, want: "QT-0001"},
		{name: "grows past width", prefix: "QT", existing: []string{"QT-9999"}, want: "QT-10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.prefix, tt.existing))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "QT-0042", Format("QT", 42))
	assert.Equal(t, "INV-0001", Format("INV", 1))
}
