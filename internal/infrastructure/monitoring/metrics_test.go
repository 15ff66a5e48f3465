package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRowsLoaded(t *testing.T) {
	before := testutil.ToFloat64(Data.RowsLoaded.WithLabelValues("contract"))
	RecordRowsLoaded("contract", 7043)
	after := testutil.ToFloat64(Data.RowsLoaded.WithLabelValues("contract"))
	assert.Equal(t, 7043.0, after-before)
}

func TestRecordSubsetSize(t *testing.T) {
	RecordSubsetSize("train", 5282)
	RecordSubsetSize("eval", 1761)
	assert.Equal(t, 5282.0, testutil.ToFloat64(Pipeline.SubsetSize.WithLabelValues("train")))
	assert.Equal(t, 1761.0, testutil.ToFloat64(Pipeline.SubsetSize.WithLabelValues("eval")))
}

func TestRecordUnknownCategory(t *testing.T) {
	before := testutil.ToFloat64(Feature.UnknownCategories.WithLabelValues("payment_method"))
	RecordUnknownCategory("payment_method")
	after := testutil.ToFloat64(Feature.UnknownCategories.WithLabelValues("payment_method"))
	assert.Equal(t, 1.0, after-before)
}

func TestRecordStage(t *testing.T) {
	count := testutil.CollectAndCount(Pipeline.StageDuration)
	RecordStage("merge", 25*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(Pipeline.StageDuration), count)
}
