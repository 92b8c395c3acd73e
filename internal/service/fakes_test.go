package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Hamzahxou/api-x/internal/cache"
	"github.com/Hamzahxou/api-x/internal/domain"
	"github.com/Hamzahxou/api-x/internal/repository"
)

// memStore is a shared in-memory backing store for the fake repositories.
// It mimics the population behavior of the GORM repositories closely enough
// for service-level tests.
type memStore struct {
	mu            sync.Mutex
	seq           int
	users         map[string]*domain.User
	follows       map[string]map[string]bool
	posts         map[string]*memPost
	comments      map[string]*memComment
	notifications map[string]*memNotification
}

type memPost struct {
	post  domain.Post
	likes map[string]bool
	seq   int
}

type memComment struct {
	comment domain.Comment
	seq     int
}

type memNotification struct {
	n   domain.Notification
	seq int
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[string]*domain.User),
		follows:       make(map[string]map[string]bool),
		posts:         make(map[string]*memPost),
		comments:      make(map[string]*memComment),
		notifications: make(map[string]*memNotification),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) summary(userID string) *domain.AuthorSummary {
	if u, ok := s.users[userID]; ok {
		return u.Summary()
	}
	return nil
}

// fakeUserRepo implements repository.UserRepository.
type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Subject == user.Subject {
			return repository.ErrSubjectExists
		}
		if u.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}
	if user.ID == "" {
		user.ID = r.s.nextID("user")
	}
	user.CreatedAt = time.Now()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Subject == subject {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

// fakeFollowRepo implements repository.FollowRepository.
type fakeFollowRepo struct{ s *memStore }

func (r *fakeFollowRepo) Toggle(ctx context.Context, followerID, followingID string) (domain.Toggle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set := r.s.follows[followerID]
	if set == nil {
		set = make(map[string]bool)
		r.s.follows[followerID] = set
	}
	if set[followingID] {
		delete(set, followingID)
		return domain.ToggledOff, nil
	}
	set[followingID] = true
	return domain.ToggledOn, nil
}

func (r *fakeFollowRepo) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.follows[followerID][followingID], nil
}

func (r *fakeFollowRepo) CountFollowers(ctx context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, set := range r.s.follows {
		if set[userID] {
			n++
		}
	}
	return n, nil
}

func (r *fakeFollowRepo) CountFollowing(ctx context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.follows[userID])), nil
}

// fakePostRepo implements repository.PostRepository.
type fakePostRepo struct{ s *memStore }

func (r *fakePostRepo) Create(ctx context.Context, post *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if post.ID == "" {
		post.ID = r.s.nextID("post")
	}
	post.CreatedAt = time.Now()
	r.s.seq++
	r.s.posts[post.ID] = &memPost{post: *post, likes: make(map[string]bool), seq: r.s.seq}
	return nil
}

func (r *fakePostRepo) populate(p *memPost) domain.Post {
	out := p.post
	out.Author = r.s.summary(out.UserID)
	out.LikeUserIDs = make([]string, 0, len(p.likes))
	for id := range p.likes {
		out.LikeUserIDs = append(out.LikeUserIDs, id)
	}
	sort.Strings(out.LikeUserIDs)
	var cs []*memComment
	for _, c := range r.s.comments {
		if c.comment.PostID == out.ID {
			cs = append(cs, c)
		}
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].seq < cs[j].seq })
	out.Comments = make([]domain.Comment, 0, len(cs))
	for _, c := range cs {
		cc := c.comment
		cc.Author = r.s.summary(cc.UserID)
		out.Comments = append(out.Comments, cc)
	}
	return out
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	out := r.populate(p)
	return &out, nil
}

func (r *fakePostRepo) list(filter func(*memPost) bool) []domain.Post {
	var ps []*memPost
	for _, p := range r.s.posts {
		if filter(p) {
			ps = append(ps, p)
		}
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].seq > ps[j].seq })
	out := make([]domain.Post, 0, len(ps))
	for _, p := range ps {
		out = append(out, r.populate(p))
	}
	return out
}

func (r *fakePostRepo) List(ctx context.Context) ([]domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(*memPost) bool { return true }), nil
}

func (r *fakePostRepo) ListByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(p *memPost) bool { return p.post.UserID == userID }), nil
}

func (r *fakePostRepo) Delete(ctx context.Context, postID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[postID]; !ok {
		return repository.ErrPostNotFound
	}
	commentIDs := make(map[string]bool)
	for id, c := range r.s.comments {
		if c.comment.PostID == postID {
			commentIDs[id] = true
			delete(r.s.comments, id)
		}
	}
	for id, n := range r.s.notifications {
		if n.n.PostID != nil && *n.n.PostID == postID {
			delete(r.s.notifications, id)
			continue
		}
		if n.n.CommentID != nil && commentIDs[*n.n.CommentID] {
			delete(r.s.notifications, id)
		}
	}
	delete(r.s.posts, postID)
	return nil
}

func (r *fakePostRepo) ToggleLike(ctx context.Context, postID, userID string) (domain.Toggle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[postID]
	if !ok {
		return domain.ToggledOff, repository.ErrPostNotFound
	}
	if p.likes[userID] {
		delete(p.likes, userID)
		return domain.ToggledOff, nil
	}
	p.likes[userID] = true
	return domain.ToggledOn, nil
}

// fakeCommentRepo implements repository.CommentRepository.
type fakeCommentRepo struct{ s *memStore }

func (r *fakeCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if comment.ID == "" {
		comment.ID = r.s.nextID("comment")
	}
	comment.CreatedAt = time.Now()
	r.s.seq++
	r.s.comments[comment.ID] = &memComment{comment: *comment, seq: r.s.seq}
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrCommentNotFound
	}
	out := c.comment
	out.Author = r.s.summary(out.UserID)
	return &out, nil
}

func (r *fakeCommentRepo) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var cs []*memComment
	for _, c := range r.s.comments {
		if c.comment.PostID == postID {
			cs = append(cs, c)
		}
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].seq > cs[j].seq })
	out := make([]domain.Comment, 0, len(cs))
	for _, c := range cs {
		cc := c.comment
		cc.Author = r.s.summary(cc.UserID)
		out = append(out, cc)
	}
	return out, nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, commentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[commentID]; !ok {
		return repository.ErrCommentNotFound
	}
	for id, n := range r.s.notifications {
		if n.n.CommentID != nil && *n.n.CommentID == commentID {
			delete(r.s.notifications, id)
		}
	}
	delete(r.s.comments, commentID)
	return nil
}

// fakeNotificationRepo implements repository.NotificationRepository.
type fakeNotificationRepo struct{ s *memStore }

func (r *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n.ID == "" {
		n.ID = r.s.nextID("notification")
	}
	n.CreatedAt = time.Now()
	r.s.seq++
	r.s.notifications[n.ID] = &memNotification{n: *n, seq: r.s.seq}
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, userID string) ([]domain.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ns []*memNotification
	for _, n := range r.s.notifications {
		if n.n.ToUserID == userID {
			ns = append(ns, n)
		}
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i].seq > ns[j].seq })
	out := make([]domain.Notification, 0, len(ns))
	for _, n := range ns {
		nn := n.n
		nn.From = r.s.summary(nn.FromUserID)
		if nn.PostID != nil {
			if p, ok := r.s.posts[*nn.PostID]; ok {
				nn.Post = &domain.PostRef{ID: p.post.ID, Content: p.post.Content, Image: p.post.Image}
			}
		}
		if nn.CommentID != nil {
			if c, ok := r.s.comments[*nn.CommentID]; ok {
				nn.Comment = &domain.CommentRef{ID: c.comment.ID, Content: c.comment.Content}
			}
		}
		out = append(out, nn)
	}
	return out, nil
}

func (r *fakeNotificationRepo) DeleteForRecipient(ctx context.Context, id, recipientID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || n.n.ToUserID != recipientID {
		return repository.ErrNotificationNotFound
	}
	delete(r.s.notifications, id)
	return nil
}

// fakeProfileCache implements cache.ProfileCache in memory.
type fakeProfileCache struct {
	mu      sync.Mutex
	entries map[string]cache.ProfileCacheResult
	sets    int
	deletes int
}

func newFakeProfileCache() *fakeProfileCache {
	return &fakeProfileCache{entries: make(map[string]cache.ProfileCacheResult)}
}

func (c *fakeProfileCache) Get(ctx context.Context, key string) (*cache.ProfileCacheResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.entries[key]; ok {
		cp := r
		return &cp, nil
	}
	return nil, cache.ErrCacheMiss
}

func (c *fakeProfileCache) Set(ctx context.Context, key string, result *cache.ProfileCacheResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = *result
	c.sets++
	return nil
}

func (c *fakeProfileCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.deletes++
	return nil
}

func (c *fakeProfileCache) BuildKeyByUsername(username string) string {
	return "test:username:" + username
}

func (c *fakeProfileCache) Close() error { return nil }

// fakeImageStore implements ImageStore.
type fakeImageStore struct {
	url string
	err error
}

func (f *fakeImageStore) StorePostImage(ctx context.Context, userID string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

// env bundles the fully wired services over one shared store.
type env struct {
	store         *memStore
	users         *fakeUserRepo
	follows       *fakeFollowRepo
	posts         *fakePostRepo
	comments      *fakeCommentRepo
	notifications *fakeNotificationRepo
	cache         *fakeProfileCache
	images        *fakeImageStore

	userSvc         UserService
	postSvc         PostService
	commentSvc      CommentService
	notificationSvc NotificationService
}

func newEnv() *env {
	s := newMemStore()
	e := &env{
		store:         s,
		users:         &fakeUserRepo{s: s},
		follows:       &fakeFollowRepo{s: s},
		posts:         &fakePostRepo{s: s},
		comments:      &fakeCommentRepo{s: s},
		notifications: &fakeNotificationRepo{s: s},
		cache:         newFakeProfileCache(),
		images:        &fakeImageStore{url: "http://media.test/posts/img.jpg"},
	}
	e.userSvc = NewUserService(e.users, e.follows, e.notifications, nil, e.cache, time.Minute)
	e.postSvc = NewPostService(e.posts, e.users, e.notifications, nil, e.images)
	e.commentSvc = NewCommentService(e.comments, e.posts, e.users, e.notifications, nil)
	e.notificationSvc = NewNotificationService(e.notifications, e.users)
	return e
}

// sync creates a user through the real sync path and returns the response.
func (e *env) sync(ctx context.Context, subject, username string) *domain.UserResponse {
	user, _, err := e.userSvc.Sync(ctx, subject, &domain.SyncUserRequest{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		panic(err)
	}
	return user
}
