package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"formulakb/internal/extract"
	"formulakb/internal/kb"
	applog "formulakb/internal/log"
	"formulakb/internal/metrics"
	"formulakb/internal/views/components"
	"formulakb/internal/views/pages"
)

const submissionBulk = "bulk"

// BulkIngredients shows the INCI list form on GET and imports names on POST.
func BulkIngredients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		renderBulkForm(w, r, pages.BulkFormView{Values: pages.DefaultBulkValues()})
	case http.MethodPost:
		bulkAdd(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func bulkAdd(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, extract.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(extract.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		applog.Error(r.Context(), "failed to parse bulk ingredient form", "error", err)
		renderBulkForm(w, r, pages.BulkFormView{
			Values:  pages.DefaultBulkValues(),
			Flashes: []components.Flash{{Kind: components.FlashError, Message: "Upload is too large or invalid. Please retry with a smaller file."}},
		})
		return
	}

	values := pages.BulkFormValues{
		Raw:               r.FormValue(pages.FieldRaw),
		Dedup:             formChecked(r.FormValue(pages.FieldDedup)),
		DefaultFunction:   r.FormValue(pages.FieldDefaultFunction),
		DefaultCommonName: r.FormValue(pages.FieldDefaultCommonName),
	}
	view := pages.BulkFormView{Values: values}

	uploaded, err := readUploadedINCI(r)
	if err != nil {
		applog.Error(r.Context(), "failed to read uploaded document", "error", err)
		observeSubmission(submissionBulk, metrics.OutcomeInvalid)
		view.Flashes = []components.Flash{{Kind: components.FlashError, Message: fmt.Sprintf("We couldn't read the uploaded document: %v", err)}}
		renderBulkForm(w, r, view)
		return
	}
	raw := values.Raw
	if uploaded != "" {
		if strings.TrimSpace(raw) != "" {
			raw += "\n"
		}
		raw += uploaded
	}

	submitMu.Lock()
	defer submitMu.Unlock()

	session, err := openSession(r)
	if err != nil {
		applog.Error(r.Context(), "failed to load knowledge base", "error", err)
		observeSubmission(submissionBulk, metrics.OutcomeFailed)
		view.Flashes = []components.Flash{{Kind: components.FlashError, Message: fmt.Sprintf("Failed to add ingredients: %v", err)}}
		renderBulkForm(w, r, view)
		return
	}

	result, err := session.BulkAddIngredients(r.Context(), kb.BulkInput{
		Raw:               raw,
		Dedup:             values.Dedup,
		DefaultCommonName: values.DefaultCommonName,
		DefaultFunction:   values.DefaultFunction,
	})
	view.Added = result.Added
	switch {
	case errors.Is(err, kb.ErrNoTokens):
		observeSubmission(submissionBulk, metrics.OutcomeInvalid)
		view.Flashes = []components.Flash{{Kind: components.FlashWarning, Message: "No INCI names detected."}}
	case err != nil:
		applog.Error(r.Context(), "failed to add ingredients", "error", err, "added", len(result.Added))
		observeSubmission(submissionBulk, metrics.OutcomeFailed)
		view.Flashes = []components.Flash{{Kind: components.FlashError, Message: fmt.Sprintf("Failed to add ingredients: %v", err)}}
	case result.NothingAdded():
		observeSubmission(submissionBulk, metrics.OutcomeSuccess)
		view.Flashes = []components.Flash{
			{Kind: components.FlashSuccess, Message: "Added 0 ingredient(s)."},
			{Kind: components.FlashInfo, Message: "Nothing new to add. Everything already existed or input was empty."},
		}
	default:
		observeSubmission(submissionBulk, metrics.OutcomeSuccess)
		applog.Info(r.Context(), "ingredients added", "count", len(result.Added), "tokens", len(result.Tokens))
		view.Values = pages.DefaultBulkValues()
		view.Flashes = []components.Flash{{Kind: components.FlashSuccess, Message: fmt.Sprintf("Added %d ingredient(s).", len(result.Added))}}
	}
	renderBulkForm(w, r, view)
}

// readUploadedINCI returns the INCI section of the optional uploaded document.
func readUploadedINCI(r *http.Request) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	file, header, err := r.FormFile(pages.FieldDocument)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if header.Size > extract.MaxUploadSize {
		return "", fmt.Errorf("file exceeds %d bytes", extract.MaxUploadSize)
	}
	buf := bytes.NewBuffer(make([]byte, 0, header.Size))
	if _, err := io.Copy(buf, file); err != nil {
		return "", err
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = extract.MimeTypeFromName(header.Filename)
	}
	text, err := extract.Text(buf.Bytes(), mime)
	if err != nil {
		return "", err
	}
	return extract.INCISection(text), nil
}

func formChecked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

func renderBulkForm(w http.ResponseWriter, r *http.Request, view pages.BulkFormView) {
	renderComponent(w, r, pick(r, pages.BulkFormContent(view), pages.BulkForm(shellFor(r), view)))
}
