package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_Get(t *testing.T) {
	lib, err := NewLibrary([]*Document{
		{Role: RolePTXGuide, Segments: []Segment{{Index: 0, Content: "exercise guide"}}},
		{Role: RoleCUEManual, Segments: []Segment{{Index: 0, Content: "cue manual"}}},
	})
	require.NoError(t, err)

	doc, err := lib.Get(RolePTXGuide)
	require.NoError(t, err)
	assert.Equal(t, "exercise guide", doc.Text())

	// 未読み込みのロールはエラー
	_, err = lib.Get(RoleStrokeComplications)
	assert.Error(t, err)
}

func TestNewLibrary_DuplicateRole(t *testing.T) {
	_, err := NewLibrary([]*Document{
		{Role: RolePTXGuide},
		{Role: RolePTXGuide},
	})
	assert.ErrorContains(t, err, "duplicate document role")
}

func TestLibrary_Select_PreservesOrder(t *testing.T) {
	lib, err := NewLibrary([]*Document{
		{Role: RoleSCIComplications},
		{Role: RoleCUEManual},
		{Role: RolePTXGuide},
		{Role: RoleStrokeComplications},
	})
	require.NoError(t, err)

	// フォローアップフローで使う順序のまま返ること
	docs, err := lib.Select(RoleCUEManual, RolePTXGuide, RoleStrokeComplications, RoleSCIComplications)
	require.NoError(t, err)
	require.Len(t, docs, 4)
	assert.Equal(t, RoleCUEManual, docs[0].Role)
	assert.Equal(t, RolePTXGuide, docs[1].Role)
	assert.Equal(t, RoleStrokeComplications, docs[2].Role)
	assert.Equal(t, RoleSCIComplications, docs[3].Role)

	// ひとつでも欠けていればエラー
	_, err = lib.Select(RoleCUEManual, RolePainGuide)
	assert.Error(t, err)
}

func TestDocument_Text(t *testing.T) {
	doc := &Document{
		Role: RolePainGuide,
		Segments: []Segment{
			{Index: 0, Content: "page one. "},
			{Index: 1, Content: "page two."},
		},
	}
	assert.Equal(t, "page one. page two.", doc.Text())
}
