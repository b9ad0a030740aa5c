package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PostKeyPrefix      = "post:%d"
	HotPostsKey        = "posts:hot"
	CategoriesKey      = "categories:all"
	CourseKeyPrefix    = "course:%s"
	TagCloudKey        = "tags:all"
	UserActivityPrefix = "user:%d:activity"
)

const (
	UserTTL       = 5 * time.Minute
	PostTTL       = 30 * time.Minute
	HotPostsTTL   = 1 * time.Minute
	CategoriesTTL = 10 * time.Minute
	CourseTTL     = 10 * time.Minute
	TagCloudTTL   = 10 * time.Minute
	ActivityTTL   = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func CourseKey(code string) string {
	return fmt.Sprintf(CourseKeyPrefix, code)
}

func UserActivityKey(userID uint) string {
	return fmt.Sprintf(UserActivityPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, UserActivityKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, HotPostsKey)
}

func InvalidateCourse(ctx context.Context, code string) {
	Invalidate(ctx, CourseKey(code))
}
