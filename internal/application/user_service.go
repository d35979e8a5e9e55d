package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/domain/repository"
	"github.com/2phishy/phishy-backend/pkg/helpers"
	"github.com/2phishy/phishy-backend/pkg/mailer"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService covers registration, authentication and the admin user surface.
type UserService struct {
	Repo         repository.UserRepository
	Policy       Policy
	JWT          *helpers.JWTManager
	Redis        *redis.Client
	Logger       *logrus.Logger
	Publisher    *helpers.RabbitPublisher
	GCS          *storage.Client
	GCSBucket    string
	ES           *elasticsearch.Client
	ESUsersIndex string

	now func() time.Time
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client,
	logger *logrus.Logger, pub *helpers.RabbitPublisher, gcs *storage.Client, gcsBucket string,
	es *elasticsearch.Client, esUsersIndex string) *UserService {
	return &UserService{
		Repo:         repo,
		JWT:          jwt,
		Redis:        rdb,
		Logger:       logger,
		Publisher:    pub,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		now:          time.Now,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     entity.Role // zero value defaults to student
}

// Register creates a new account, indexes it for admin search and queues a
// welcome email.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleStudent
	}
	if !role.Valid() {
		return nil, entity.ErrInvalidRole
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     role,
		Status:   entity.StatusActive,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username, "role": u.Role}).
		Info("user registered")

	_ = s.indexUser(ctx, u)
	s.publishEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Username": u.Username},
	})
	return u, nil
}

// Authenticate validates username/password and stamps last_login.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if err := s.Repo.UpdateLastLogin(u.ID); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("last login update failed")
	}
	t := s.now().UTC()
	u.LastLogin = &t
	return u, nil
}

// IssueTokens generates an access/refresh pair and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"username":   u.Username,
			"role":       string(u.Role),
			"sid":        sid,
			"created_at": s.now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, err := pipe.Exec(ctx); err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Login authenticates and issues tokens in one step.
func (s *UserService) Login(ctx context.Context, username, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the session id and both tokens. The refresh token's sid must
// match the current Redis session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(claims.UserID)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, err := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, ErrInvalidCredentials
		}
	}
	return s.IssueTokens(ctx, u)
}

// Logout drops the Redis session.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, sessionKey(userID)).Err()
	}
}

func (s *UserService) GetUser(id string) (*entity.User, error) {
	return s.Repo.GetByID(id)
}

// GetUserFor returns the target user, applying the viewing policy.
func (s *UserService) GetUserFor(actor *entity.User, targetID string) (*entity.User, error) {
	if err := s.Policy.CanViewUser(actor, targetID); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(targetID)
}

type SelfPatch struct {
	Username *string
	Email    *string
}

// UpdateSelf lets a user change their own username or email. Role and status
// are not reachable from here.
func (s *UserService) UpdateSelf(ctx context.Context, userID string, patch SelfPatch) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

// AdminUserPatch enumerates exactly the fields an admin may change. Anything
// else is rejected at the binding layer, not silently accepted.
type AdminUserPatch struct {
	Username *string
	Email    *string
	Role     *entity.Role
	Status   *entity.AccountStatus
}

// AdminUpdateUser applies an admin patch under the policy rules: no
// self-mutation of role/status, super-admin grants only by super-admins.
func (s *UserService) AdminUpdateUser(ctx context.Context, actor *entity.User, targetID string, patch AdminUserPatch) (*entity.User, error) {
	u, err := s.Repo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if patch.Role != nil {
		if !patch.Role.Valid() {
			return nil, entity.ErrInvalidRole
		}
		if err := s.Policy.CanChangeRole(actor, targetID, *patch.Role); err != nil {
			return nil, err
		}
		u.Role = *patch.Role
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, entity.ErrInvalidStatus
		}
		if err := s.Policy.CanChangeStatus(actor, targetID); err != nil {
			return nil, err
		}
		u.Status = *patch.Status
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"admin": actor.Username, "user_id": targetID}).
		Info("user updated by admin")
	_ = s.indexUser(ctx, u)
	return u, nil
}

// UpdateRole changes a single user's role under the role-mutation policy.
func (s *UserService) UpdateRole(ctx context.Context, actor *entity.User, targetID string, newRole entity.Role) (*entity.User, error) {
	return s.AdminUpdateUser(ctx, actor, targetID, AdminUserPatch{Role: &newRole})
}

// UpdateStatus changes a single user's account status and notifies them.
func (s *UserService) UpdateStatus(ctx context.Context, actor *entity.User, targetID string, newStatus entity.AccountStatus) (*entity.User, error) {
	u, err := s.AdminUpdateUser(ctx, actor, targetID, AdminUserPatch{Status: &newStatus})
	if err != nil {
		return nil, err
	}
	s.publishEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateAccountNotice,
		Data:     map[string]any{"Username": u.Username, "Status": string(newStatus)},
	})
	return u, nil
}

// DeleteUser removes an account. Self-deletion is denied.
func (s *UserService) DeleteUser(actor *entity.User, targetID string) error {
	if err := s.Policy.CanDeleteUser(actor, targetID); err != nil {
		return err
	}
	ok, err := s.Repo.Delete(targetID)
	if err != nil {
		return err
	}
	if !ok {
		return entity.ErrUserNotFound
	}
	s.Logger.WithFields(logrus.Fields{"admin": actor.Username, "user_id": targetID}).
		Info("user deleted by admin")
	return nil
}

func (s *UserService) ListUsers() ([]*entity.User, error) { return s.Repo.List() }

func (s *UserService) ListUsersByRole(role entity.Role) ([]*entity.User, error) {
	if !role.Valid() {
		return nil, entity.ErrInvalidRole
	}
	return s.Repo.ListByRole(role)
}

func (s *UserService) ListUsersByStatus(status entity.AccountStatus) ([]*entity.User, error) {
	if !status.Valid() {
		return nil, entity.ErrInvalidStatus
	}
	return s.Repo.ListByStatus(status)
}

func (s *UserService) UserStats() (*entity.UserStats, error) { return s.Repo.Stats() }

// UploadAvatar stores an avatar image in GCS and saves its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Repo.Update(u); err != nil {
		return "", err
	}
	_ = s.indexUser(ctx, u)
	return url, nil
}

func (s *UserService) publishEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("email publish failed")
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":             u.ID,
		"username":       u.Username,
		"email":          u.Email,
		"role":           string(u.Role),
		"account_status": string(u.Status),
		"created_at":     u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

// SearchUsers runs a multi_match query over username and email.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "email"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
