//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/interviewqa/apiserver/config"
	"github.com/interviewqa/apiserver/internal/server"
)

const (
	serverPort = 18080
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to locate repo root: %v\n", err)
		os.Exit(1)
	}

	if err := dockerCompose(ctx, root, "up", "-d", "postgres", "minio"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start docker compose: %v\n", err)
		os.Exit(1)
	}

	setEnv()
	cfg := config.LoadConfig()

	if err := waitForPostgres(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "postgres not ready: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	if err := runMigrations(root, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	srv, err := server.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}
	go func() {
		_ = srv.Start()
	}()

	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown(context.Background())
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	code := m.Run()

	_ = srv.Shutdown(context.Background())
	_ = dockerCompose(context.Background(), root, "down")
	os.Exit(code)
}

func TestQuestionLifecycle(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("user%d", suffix)
	email := fmt.Sprintf("%s@example.com", username)

	token := signup(t, baseURL, username, email, "testpass123!")

	var dup map[string]string
	status := doJSON(t, http.MethodPost, baseURL+"/auth/signup", "", map[string]string{
		"username": username, "email": email, "password": "testpass123!",
	}, &dup)
	if status != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", status)
	}

	imageURL := uploadImage(t, baseURL, token)

	var jobResp struct {
		Job struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"job"`
	}
	status = doJSON(t, http.MethodPost, baseURL+"/jobs", "", map[string]string{
		"title": "Backend", "imageUrl": imageURL,
	}, &jobResp)
	if status != http.StatusCreated {
		t.Fatalf("create job: expected 201, got %d", status)
	}
	jobID := jobResp.Job.ID

	var subJobResp struct {
		SubJob struct {
			ID              string `json:"id"`
			MainJobCategory string `json:"mainJobCategory"`
		} `json:"subJob"`
	}
	status = doJSON(t, http.MethodPost, baseURL+"/jobs/"+jobID+"/subjobs", "", map[string]string{
		"title": "Go", "imageUrl": imageURL,
	}, &subJobResp)
	if status != http.StatusCreated {
		t.Fatalf("create subjob: expected 201, got %d", status)
	}
	if subJobResp.SubJob.MainJobCategory != jobID {
		t.Fatalf("subjob parent: expected %s, got %s", jobID, subJobResp.SubJob.MainJobCategory)
	}
	questionsURL := fmt.Sprintf("%s/jobs/%s/subjobs/%s/questions", baseURL, jobID, subJobResp.SubJob.ID)

	var created struct {
		Question struct {
			ID string `json:"id"`
		} `json:"question"`
		UserQuestions []struct {
			ID string `json:"id"`
		} `json:"userQuestions"`
	}
	status = doJSON(t, http.MethodPost, questionsURL, token, map[string]string{
		"title": "Goroutines", "description": "  Explain the scheduler.  ",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create question: expected 201, got %d", status)
	}
	if len(created.UserQuestions) != 1 || created.UserQuestions[0].ID != created.Question.ID {
		t.Fatalf("unexpected userQuestions: %+v", created.UserQuestions)
	}
	questionURL := questionsURL + "/" + created.Question.ID

	var favorites struct {
		Favorites []struct {
			ID string `json:"id"`
		} `json:"favorites"`
	}
	for i := 0; i < 2; i++ {
		status = doJSON(t, http.MethodPut, questionURL+"/like", token, nil, &favorites)
		if status != http.StatusOK {
			t.Fatalf("like: expected 200, got %d", status)
		}
	}
	if len(favorites.Favorites) != 1 {
		t.Fatalf("like twice: expected 1 favorite, got %d", len(favorites.Favorites))
	}

	status = doJSON(t, http.MethodPut, questionURL+"/unlike", token, nil, &favorites)
	if status != http.StatusOK || len(favorites.Favorites) != 0 {
		t.Fatalf("unlike: status %d favorites %d", status, len(favorites.Favorites))
	}

	other := signup(t, baseURL, username+"x", "x"+email, "testpass123!")
	var errResp map[string]string
	status = doJSON(t, http.MethodDelete, questionURL, other, nil, &errResp)
	if status != http.StatusForbidden {
		t.Fatalf("delete by other user: expected 403, got %d", status)
	}

	status = doJSON(t, http.MethodDelete, questionURL, token, nil, nil)
	if status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	status = doJSON(t, http.MethodGet, questionURL, "", nil, &errResp)
	if status != http.StatusNotFound {
		t.Fatalf("get deleted question: expected 404, got %d", status)
	}
	if errResp["message"] != "No question found." {
		t.Fatalf("unexpected message: %q", errResp["message"])
	}

	var me struct {
		User struct {
			Username      string            `json:"username"`
			Questions []json.RawMessage `json:"questions"`
		} `json:"user"`
	}
	status = doJSON(t, http.MethodGet, baseURL+"/auth/me", token, nil, &me)
	if status != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", status)
	}
	if me.User.Username != username {
		t.Fatalf("me: unexpected username %q", me.User.Username)
	}
	if len(me.User.Questions) != 0 {
		t.Fatalf("me: deleted question should be dropped, got %d", len(me.User.Questions))
	}
}

func signup(t *testing.T, baseURL, username, email, password string) string {
	t.Helper()
	var resp struct {
		Auth  bool   `json:"auth"`
		Token string `json:"token"`
	}
	status := doJSON(t, http.MethodPost, baseURL+"/auth/signup", "", map[string]string{
		"username": username, "email": email, "password": password,
	}, &resp)
	if status != http.StatusCreated || !resp.Auth || resp.Token == "" {
		t.Fatalf("signup %s: status %d auth %v", username, status, resp.Auth)
	}
	return resp.Token
}

func uploadImage(t *testing.T, baseURL, token string) string {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "cover.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(pngHeader); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/images", &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload image: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("upload image: status %d body %s", resp.StatusCode, data)
	}

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if !strings.HasSuffix(out.ImageURL, ".png") {
		t.Fatalf("unexpected image url %q", out.ImageURL)
	}
	return out.ImageURL
}

func doJSON(t *testing.T, method, url, token string, in any, out any) int {
	t.Helper()
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("encode request: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func setEnv() {
	_ = os.Setenv("ENV", "test")
	_ = os.Setenv("JWT_SECRET", "test-secret")
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("STORE_BACKEND", config.StorePostgres)
	_ = os.Setenv("DB_HOST", "localhost")
	_ = os.Setenv("DB_PORT", "5432")
	_ = os.Setenv("DB_USER", "interviewqa")
	_ = os.Setenv("DB_PASSWORD", "password")
	_ = os.Setenv("DB_NAME", "interviewqa")
	_ = os.Setenv("DB_SSL", "false")
	_ = os.Setenv("STORAGE_BACKEND", "minio")
	_ = os.Setenv("MINIO_ENDPOINT", "localhost:9000")
	_ = os.Setenv("MINIO_ACCESS_KEY", "minioadmin")
	_ = os.Setenv("MINIO_SECRET_KEY", "minioadmin")
	_ = os.Setenv("MINIO_BUCKET", "interviewqa-e2e")
	_ = os.Setenv("STORAGE_PUBLIC_URL", "http://localhost:9000/interviewqa-e2e")
}

func waitForPostgres(ctx context.Context, cfg config.Config) error {
	db, err := sql.Open("postgres", cfg.Database.URL())
	if err != nil {
		return err
	}
	defer db.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres ping timeout: %w", err)
		case <-ticker.C:
		}
	}
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}

func runMigrations(root string, cfg config.Config) error {
	migrationsURL := "file://" + filepath.Join(root, "internal", "db", "migrations")
	migrator, err := migrate.New(migrationsURL, cfg.Database.URL())
	if err != nil {
		return err
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func dockerCompose(ctx context.Context, root string, args ...string) error {
	composeFile := filepath.Join(root, "development", "docker-compose.yml")
	baseArgs := append([]string{"compose", "-f", composeFile}, args...)
	cmd := exec.CommandContext(ctx, "docker", baseArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
