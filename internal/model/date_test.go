package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var e struct {
		Start *Date `json:"start_date"`
		End   *Date `json:"end_date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start_date":"2021-03-01","end_date":null}`), &e))
	require.NotNil(t, e.Start)
	require.Nil(t, e.End)
	require.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), e.Start.Time)

	out, err := json.Marshal(e)
	require.NoError(t, err)
	require.JSONEq(t, `{"start_date":"2021-03-01","end_date":null}`, string(out))
}

func TestDate_RejectsGarbage(t *testing.T) {
	var d Date
	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
}

func TestDate_ScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan([]byte("2020-01-02")))
	v, err := d.Value()
	require.NoError(t, err)
	require.Equal(t, "2020-01-02", v)

	require.NoError(t, d.Scan(nil))
	v, err = d.Value()
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestUser_PublicOmitsHash(t *testing.T) {
	u := User{ID: 1, Email: "a@x.com", PasswordHash: "$2a$10$xyz", Name: "A", Role: RoleAdmin}
	out, err := json.Marshal(u.Public())
	require.NoError(t, err)
	require.NotContains(t, string(out), "$2a$")

	out, err = json.Marshal(u)
	require.NoError(t, err)
	require.NotContains(t, string(out), "$2a$")
}
