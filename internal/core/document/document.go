package document

import (
	"fmt"
	"strings"
)

// Role は参照文書の役割を表す
// 文書リスト内の位置（docs[0], docs[3] など）を暗黙の契約にする代わりに、
// 読み込み時に名前付きロールとして解決する
type Role string

const (
	RolePainGuide           Role = "pain_guide"
	RolePainGuide2          Role = "pain_guide_2"
	RolePainGuide3          Role = "pain_guide_3"
	RoleCUEManual           Role = "cue_manual"
	RolePTXGuide            Role = "ptx_guide"
	RoleStrokeComplications Role = "stroke_complications"
	RoleSCIComplications    Role = "sci_complications"
)

// AllRoles は読み込み対象の全ロール（固定順）
var AllRoles = []Role{
	RolePainGuide,
	RolePainGuide2,
	RolePainGuide3,
	RoleCUEManual,
	RolePTXGuide,
	RoleStrokeComplications,
	RoleSCIComplications,
}

// Segment は文書内のひとつの構造化テキスト片を表す（PDFでは1ページ相当）
type Segment struct {
	// 文書内での順序（0始まり）
	Index int

	// テキスト内容
	Content string
}

// Document はひとつのソースファイルから読み込んだ参照文書を表す
// 読み込み後は不変
type Document struct {
	// 文書の役割
	Role Role

	// 読み込み元のファイルパス
	SourcePath string

	// 順序付きのテキストセグメント
	Segments []Segment
}

// Text は全セグメントを連結した文書全文を返す
func (d *Document) Text() string {
	var sb strings.Builder
	for _, seg := range d.Segments {
		sb.WriteString(seg.Content)
	}
	return sb.String()
}

// Library は読み込み済みの参照文書をロールで引ける不変コレクション
type Library struct {
	docs map[Role]*Document
}

// NewLibrary は文書リストからLibraryを構築する
// 同一ロールの重複はエラー
func NewLibrary(docs []*Document) (*Library, error) {
	byRole := make(map[Role]*Document, len(docs))
	for _, doc := range docs {
		if _, ok := byRole[doc.Role]; ok {
			return nil, fmt.Errorf("duplicate document role: %s", doc.Role)
		}
		byRole[doc.Role] = doc
	}
	return &Library{docs: byRole}, nil
}

// Get は指定ロールの文書を返す
// 未読み込みのロールはエラー
func (l *Library) Get(role Role) (*Document, error) {
	doc, ok := l.docs[role]
	if !ok {
		return nil, fmt.Errorf("document not loaded for role: %s", role)
	}
	return doc, nil
}

// Select は指定ロールの文書を順序どおりに返す
// ひとつでも未読み込みならエラー（ワークフロー開始前に検出する）
func (l *Library) Select(roles ...Role) ([]*Document, error) {
	selected := make([]*Document, 0, len(roles))
	for _, role := range roles {
		doc, err := l.Get(role)
		if err != nil {
			return nil, err
		}
		selected = append(selected, doc)
	}
	return selected, nil
}

// Len は読み込み済み文書数を返す
func (l *Library) Len() int {
	return len(l.docs)
}
