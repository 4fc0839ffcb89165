package document

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ledongthuc/pdf"
)

// Loader は参照文書を読み込むコラボレータのインターフェース
// パスを受け取り、順序付きセグメント列を返す
type Loader interface {
	Load(path string) ([]Segment, error)
}

// PDFLoader はPDFからテキストセグメントを抽出するLoader実装
// 1ページを1セグメントとして扱う
type PDFLoader struct {
	logger *slog.Logger
}

// NewPDFLoader は新しいPDFLoaderを作成する
func NewPDFLoader(logger *slog.Logger) *PDFLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFLoader{logger: logger}
}

// Load はPDFファイルをページ単位のセグメントに読み込む
func (l *PDFLoader) Load(path string) ([]Segment, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	segments := make([]Segment, 0, totalPages)

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from %s page %d: %w", path, pageNum, err)
		}

		segments = append(segments, Segment{
			Index:   len(segments),
			Content: content,
		})
	}

	l.logger.Info("document loaded", "path", path, "pages", totalPages, "segments", len(segments))

	return segments, nil
}

// roleFiles はロールごとの既定ファイル名
var roleFiles = map[Role]string{
	RolePainGuide:           "pain_guide.pdf",
	RolePainGuide2:          "pain_guide_2.pdf",
	RolePainGuide3:          "pain_guide_3.pdf",
	RoleCUEManual:           "cue_manual.pdf",
	RolePTXGuide:            "ptx_guide.pdf",
	RoleStrokeComplications: "stroke_complications.pdf",
	RoleSCIComplications:    "sci_complications.pdf",
}

// LoadLibrary はディレクトリ内の臨床ガイドを全ロール分読み込み、Libraryを構築する
func LoadLibrary(loader Loader, dir string) (*Library, error) {
	docs := make([]*Document, 0, len(AllRoles))

	for i, role := range AllRoles {
		path := filepath.Join(dir, roleFiles[role])
		fmt.Printf("Processing file %d: %s\n", i+1, path)

		segments, err := loader.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s document: %w", role, err)
		}

		docs = append(docs, &Document{
			Role:       role,
			SourcePath: path,
			Segments:   segments,
		})
		fmt.Printf("File %d processed successfully.\n", i+1)
	}

	fmt.Println("All files have been processed.")

	return NewLibrary(docs)
}
