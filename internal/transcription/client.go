package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"call-annotator-go/internal/logger"
	"call-annotator-go/internal/types"
)

var httpClient = &http.Client{Timeout: 120 * time.Second}

// HTTPEngine calls a remote ASR service that accepts a multipart audio upload
// on POST {base}/transcribe and answers with a Result JSON body.
type HTTPEngine struct {
	BaseURL string
}

func (e *HTTPEngine) Transcribe(ctx context.Context, audioPath, language string) (Result, error) {
	log := logger.New().WithComponent("asr-client").WithField("audio", filepath.Base(audioPath))
	endpoint := strings.TrimRight(e.BaseURL, "/") + "/transcribe"
	if language != "" {
		endpoint += "?" + url.Values{"language": {language}}.Encode()
	}

	var out Result
	log.Info("starting transcription")
	err := postFileJSON(ctx, endpoint, audioPath, &out)
	if err != nil {
		log.WithError(err).Error("transcription failed")
		return Result{}, fmt.Errorf("asr: %w", err)
	}
	log.WithField("segments", len(out.Segments)).Info("transcription complete")
	return out, nil
}

// HTTPDiarizer calls a remote diarization service: POST {base}/diarize with
// the audio file, answering {"turns": [...]}.
type HTTPDiarizer struct {
	BaseURL string
}

func (d *HTTPDiarizer) Diarize(ctx context.Context, audioPath string) ([]types.DiarizationTurn, error) {
	log := logger.New().WithComponent("diarizer-client").WithField("audio", filepath.Base(audioPath))
	endpoint := strings.TrimRight(d.BaseURL, "/") + "/diarize"

	var out struct {
		Turns []types.DiarizationTurn `json:"turns"`
	}
	if err := postFileJSON(ctx, endpoint, audioPath, &out); err != nil {
		log.WithError(err).Error("diarization failed")
		return nil, fmt.Errorf("diarizer: %w", err)
	}
	log.WithField("turns", len(out.Turns)).Info("diarization complete")
	return out.Turns, nil
}

// postFileJSON uploads the file as multipart form data and decodes the JSON
// response, retrying with exponential backoff. The request is rebuilt on
// every attempt so the body can be resent. 4xx responses are permanent.
func postFileJSON(ctx context.Context, endpoint, path string, target interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 45 * time.Second
	var lastErr error

	op := func() error {
		body, contentType, err := fileForm(path)
		if err != nil {
			return backoff.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", contentType)

		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(data))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("request rejected: code=%d body=%s", resp.StatusCode, string(data))
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(data, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(data))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}

func fileForm(path string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &b, w.FormDataContentType(), nil
}
