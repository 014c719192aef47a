package binding

import (
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
	"github.com/timkoopmans/skylar"
)

func TestBasicDBExecute(t *testing.T) {
	db := NewBasicDB()
	db.SetProperties(skylar.Properties{
		skylar.ConfigSimulateDelay: "5",
	})
	c := testConfig(t, nil)
	require.Nil(t, db.Init(c))
	require.Nil(t, db.CreateKeyspace(c))
	require.Nil(t, db.CreateTable(c))

	op := &skylar.Operation{
		Role:        skylar.RoleWrite,
		Key:         7,
		Consistency: skylar.ConsistencyLocalQuorum,
	}
	result := db.Execute(op)
	require.Equal(t, skylar.StatusOK, result.Status)
	require.True(t, result.Latency >= 5*time.Millisecond)
	require.Nil(t, db.Cleanup())
}

func TestBasicDBInitRejectsBadProperties(t *testing.T) {
	db := NewBasicDB()
	db.SetProperties(skylar.Properties{
		skylar.ConfigBasicVerbose: "maybe",
	})
	require.NotNil(t, db.Init(testConfig(t, nil)))

	db = NewBasicDB()
	db.SetProperties(skylar.Properties{
		skylar.ConfigSimulateDelay: "soon",
	})
	require.NotNil(t, db.Init(testConfig(t, nil)))
}
