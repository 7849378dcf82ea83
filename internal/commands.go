package internal

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/ptshare/ptshare-client/internal/api"
)

// userMessage maps an error to the text shown to the user: the server
// message for an application-level rejection, a generic fallback for
// transport failures.
func userMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Msg != "" {
		return apiErr.Msg
	}
	return fallback
}

// fetchCaptcha requests a fresh challenge and writes its PNG to a temp
// file the user can open. The previous challenge is dead either way.
func (m *Model) fetchCaptcha() tea.Cmd {
	return func() tea.Msg {
		challenge, err := m.apiClient.GetCaptcha(context.Background())
		if err != nil {
			return errorMsg{text: userMessage(err, "Unable to fetch captcha, please retry.")}
		}

		imagePath, err := writeCaptchaImage(challenge.Img)
		if err != nil {
			m.logger.Warn("Unable to write captcha image", "err", err)
		}

		return captchaMsg{challenge: challenge, imagePath: imagePath}
	}
}

func writeCaptchaImage(b64 string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", err
	}
	fh, err := os.CreateTemp("", "ptshare-captcha-*.png")
	if err != nil {
		return "", err
	}
	defer func() { _ = fh.Close() }()

	if _, err := fh.Write(data); err != nil {
		return "", err
	}
	return fh.Name(), nil
}

func (m *Model) submitLogin(username, password, code, challengeID string) tea.Cmd {
	return func() tea.Msg {
		token, err := m.apiClient.Login(context.Background(), username, password, code, challengeID)
		return loginResultMsg{token: token, err: err}
	}
}

func (m *Model) submitRegister(username, password, code, challengeID string) tea.Cmd {
	return func() tea.Msg {
		err := m.apiClient.Register(context.Background(), username, password, code, challengeID)
		return registerResultMsg{err: err}
	}
}

func (m *Model) fetchUserInfo() tea.Cmd {
	return func() tea.Msg {
		user, err := m.apiClient.GetUserInfo(context.Background())
		return userInfoMsg{user: user, err: err}
	}
}

// fetchSeeds issues one list read for the given filter generation. The
// handler drops the response if the generation is no longer current.
func (m *Model) fetchSeeds(gen int, category api.Category, keyword string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.apiClient.ListSeeds(context.Background(), category, keyword)
		return seedListMsg{gen: gen, items: items, err: err}
	}
}

func (m *Model) uploadSeed(category api.Category, localPath string) tea.Cmd {
	return func() tea.Msg {
		fh, err := os.Open(localPath)
		if err != nil {
			return seedUploadedMsg{err: fmt.Errorf("unable to read %s: %w", localPath, err)}
		}
		defer func() { _ = fh.Close() }()

		err = m.apiClient.UploadSeed(context.Background(), api.UploadRequest{
			Author:    m.session.UserName,
			CreatorID: m.session.UserID,
			Category:  category,
			FileName:  filepath.Base(localPath),
			File:      fh,
		})
		return seedUploadedMsg{err: err}
	}
}

func (m *Model) makeSeed(category api.Category, sourcePath string) tea.Cmd {
	return func() tea.Msg {
		err := m.apiClient.MakeSeed(context.Background(), api.MakeRequest{
			Author:     m.session.UserName,
			CreatorID:  m.session.UserID,
			Category:   category,
			SourcePath: sourcePath,
		})
		return seedMadeMsg{sourcePath: sourcePath, err: err}
	}
}

// downloadSeed streams the seed file into the download directory,
// reporting progress through the program so the task widget updates.
func (m *Model) downloadSeed(item api.SeedItem) tea.Cmd {
	task := &Task{
		ID:        uuid.New().String(),
		FileName:  item.Name,
		Status:    TaskPending,
		StartTime: time.Now(),
		LocalPath: filepath.Join(m.downloadDir, filepath.Base(item.Name)),
	}
	m.taskManager.Add(task)

	return func() tea.Msg {
		if err := os.MkdirAll(m.downloadDir, 0755); err != nil {
			return taskStatusMsg{taskID: task.ID, status: TaskFailed, err: err}
		}

		fh, err := os.Create(task.LocalPath)
		if err != nil {
			return taskStatusMsg{taskID: task.ID, status: TaskFailed, err: err}
		}
		defer func() { _ = fh.Close() }()

		m.program.Send(taskStatusMsg{taskID: task.ID, status: TaskActive})

		written, err := m.apiClient.DownloadSeed(context.Background(), item.ID, fh, func(written, total int64) {
			m.program.Send(taskProgressMsg{taskID: task.ID, bytes: written, total: total})
		})
		if err != nil {
			return taskStatusMsg{taskID: task.ID, status: TaskFailed, err: err}
		}

		m.logger.Info("Download complete", "file", task.FileName, "bytes", written)
		return taskStatusMsg{taskID: task.ID, status: TaskCompleted}
	}
}

func (m *Model) fetchPosts() tea.Cmd {
	return func() tea.Msg {
		posts, err := m.apiClient.ListPosts(context.Background())
		return postListMsg{posts: posts, err: err}
	}
}

func (m *Model) createPost(title, content string) tea.Cmd {
	return func() tea.Msg {
		err := m.apiClient.CreatePost(context.Background(), title, content, m.session.UserName)
		return postCreatedMsg{err: err}
	}
}
