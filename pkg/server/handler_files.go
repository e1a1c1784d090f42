package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaira-a/mock-api-files/pkg/filesim"
	"github.com/aaira-a/mock-api-files/pkg/httputil"
)

// multipartMemoryLimit is how much of a multipart body is held in memory
// before spilling to disk. The request size cap is enforced separately.
const multipartMemoryLimit = 10 << 20

// handleDownloadBase64 serves the embedded sample file base64-encoded inside
// a JSON descriptor.
func (s *Server) handleDownloadBase64(w http.ResponseWriter, r *http.Request) {
	data := filesim.Sample()

	httputil.WriteOK(w, map[string]any{
		"fileContent":  base64.StdEncoding.EncodeToString(data),
		"originalName": filesim.SampleName,
		"mimeType":     filesim.SampleMimeType,
		"md5":          filesim.SampleMD5,
		"size":         filesim.SampleSize,
	})
}

// handleDownloadURI serves a descriptor pointing at the sample file's remote
// location rather than the content itself.
func (s *Server) handleDownloadURI(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, map[string]any{
		"uri":          filesim.SampleURI,
		"originalName": filesim.SampleName,
		"mimeType":     filesim.SampleMimeType,
		"md5":          filesim.SampleMD5,
		"size":         filesim.SampleSize,
	})
}

// handleDownloadOctetStream streams the raw sample bytes with the descriptor
// fields carried in response headers instead of a JSON envelope.
func (s *Server) handleDownloadOctetStream(w http.ResponseWriter, r *http.Request) {
	data := filesim.Sample()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filesim.SampleName))
	w.Header().Set("originalName", filesim.SampleName)
	w.Header().Set("mimeType", filesim.SampleMimeType)
	w.Header().Set("md5", filesim.SampleMD5)
	w.Header().Set("size", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleUploadBase64(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	decoded, ok := s.decodeJSONBody(w, r, body)
	if !ok {
		return
	}
	fields, _ := decoded.(map[string]any)

	content, _ := fields["fileContent"].(string)
	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		httputil.WriteBadRequest(w, map[string]any{
			"message": "invalid base64 file content",
		})
		return
	}

	info := filesim.Describe(data)
	httputil.WriteOK(w, map[string]any{
		"customName": fields["customName"],
		"mimeType":   info.MimeType,
		"md5":        info.MD5,
		"size":       info.Size,
	})
}

func (s *Server) handleUploadFormData(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.log.Warn("request body too large", "path", r.URL.Path, "limit", s.cfg.MaxBodyBytes)
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		httputil.WriteBadRequest(w, map[string]any{
			"message": "invalid multipart form: " + err.Error(),
		})
		return
	}

	file, header, err := r.FormFile("file1")
	if err != nil {
		httputil.WriteBadRequest(w, map[string]any{
			"message": "missing file1 form field",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.WriteBadRequest(w, map[string]any{
			"message": "could not read uploaded file",
		})
		return
	}

	info := filesim.Describe(data)
	httputil.WriteOK(w, map[string]any{
		"originalName": header.Filename,
		"customName":   r.FormValue("customName"),
		"mimeType":     info.MimeType,
		"md5":          info.MD5,
		"size":         info.Size,
	})
}

func (s *Server) handleUploadOctetStream(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	// The caller supplies the original name via a content-disposition
	// header on the request, filename=<name>.
	_, originalName, _ := strings.Cut(r.Header.Get("Content-Disposition"), "filename=")

	info := filesim.Describe(data)
	httputil.WriteOK(w, map[string]any{
		"originalName": originalName,
		"customName":   r.Header.Get("Custom-Name"),
		"mimeType":     info.MimeType,
		"md5":          info.MD5,
		"size":         info.Size,
	})
}

func (s *Server) handleUploadURI(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	decoded, ok := s.decodeJSONBody(w, r, body)
	if !ok {
		return
	}
	fields, _ := decoded.(map[string]any)
	uri, _ := fields["fileUri"].(string)

	data, err := filesim.Fetch(r.Context(), s.client, uri)
	if err != nil {
		httputil.WriteBadGateway(w, map[string]any{
			"message": "could not fetch file from uri: " + err.Error(),
			"uri":     uri,
		})
		return
	}

	info := filesim.Describe(data)
	httputil.WriteOK(w, map[string]any{
		"customName": fields["customName"],
		"mimeType":   info.MimeType,
		"md5":        info.MD5,
		"size":       info.Size,
	})
}
