package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText đọc nội dung văn bản từ file tải lên theo phần mở rộng.
// Hỗ trợ .pdf, .docx, .txt, dùng làm đầu vào cho sinh câu hỏi bằng AI.
func ExtractText(fileHeader *multipart.FileHeader) (string, error) {
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".pdf":
		file, err := fileHeader.Open()
		if err != nil {
			return "", err
		}
		defer file.Close()
		return extractTextFromPDF(file)
	case ".docx":
		return extractTextFromDOCX(fileHeader)
	case ".txt":
		return extractTextFromTXT(fileHeader)
	default:
		return "", fmt.Errorf("định dạng %s không hỗ trợ trích xuất văn bản", filepath.Ext(fileHeader.Filename))
	}
}

func extractTextFromPDF(file multipart.File) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", fmt.Errorf("lỗi đọc file PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("không thể tạo reader PDF: %w", err)
	}

	var textBuilder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(content)
	}

	return textBuilder.String(), nil
}

func extractTextFromDOCX(fileHeader *multipart.FileHeader) (string, error) {
	// .docx là file zip, văn bản nằm trong word/document.xml
	tmpFile, err := os.CreateTemp("", "upload-*.docx")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	if _, err := io.Copy(tmpFile, src); err != nil {
		return "", err
	}

	r, err := zip.OpenReader(tmpFile.Name())
	if err != nil {
		return "", err
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("file docx không có word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	// Đọc XML, gom nội dung các tag <w:t>
	var buf strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "t" {
			var text string
			if err := decoder.DecodeElement(&text, &se); err == nil {
				buf.WriteString(text + " ")
			}
		}
	}

	return strings.TrimSpace(buf.String()), nil
}

func extractTextFromTXT(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
