// Package redis stores activities in Redis so several API replicas can share rosters.
//
// Each activity is a hash at activity:{name} with its roster in the list
// activity:{name}:participants. The braces form a cluster hash tag, so both keys
// of one activity live in the same slot and the roster scripts stay atomic.
package redis

import (
	"context"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"schoolactivities/internal/domain"
)

const indexKey = "activities"

var seedScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'description', ARGV[1], 'schedule', ARGV[2], 'max_participants', ARGV[3])
redis.call('DEL', KEYS[2])
for i = 4, #ARGV do
	redis.call('RPUSH', KEYS[2], ARGV[i])
end
return 1
`)

var addScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
local members = redis.call('LRANGE', KEYS[2], 0, -1)
for _, m in ipairs(members) do
	if m == ARGV[1] then
		return 0
	end
end
redis.call('RPUSH', KEYS[2], ARGV[1])
return 1
`)

var removeScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('LREM', KEYS[2], 1, ARGV[1])
`)

type activityRepository struct {
	client goredis.UniversalClient
}

// NewActivityRepository returns a store backed by client.
func NewActivityRepository(client goredis.UniversalClient) domain.ActivityRepository {
	return &activityRepository{client: client}
}

// NewClient creates a Redis client with the pool settings the service runs with.
func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10,
	})
}

func activityKey(name string) string     { return "activity:{" + name + "}" }
func participantsKey(name string) string { return "activity:{" + name + "}:participants" }

func (r *activityRepository) Seed(ctx context.Context, activities []*domain.Activity) error {
	for _, a := range activities {
		args := []any{a.Description, a.Schedule, a.MaxParticipants}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if _, ok := seen[email]; ok {
				continue
			}
			seen[email] = struct{}{}
			args = append(args, email)
		}
		keys := []string{activityKey(a.Name), participantsKey(a.Name)}
		if err := seedScript.Run(ctx, r.client, keys, args...).Err(); err != nil {
			return fmt.Errorf("seed activity %q: %w", a.Name, err)
		}
		if err := r.client.SAdd(ctx, indexKey, a.Name).Err(); err != nil {
			return fmt.Errorf("index activity %q: %w", a.Name, err)
		}
	}
	return nil
}

func (r *activityRepository) List(ctx context.Context) (map[string]*domain.Activity, error) {
	names, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list activity names: %w", err)
	}

	hashes := make(map[string]*goredis.MapStringStringCmd, len(names))
	rosters := make(map[string]*goredis.StringSliceCmd, len(names))
	if _, err := r.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, name := range names {
			hashes[name] = pipe.HGetAll(ctx, activityKey(name))
			rosters[name] = pipe.LRange(ctx, participantsKey(name), 0, -1)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	activities := make(map[string]*domain.Activity, len(names))
	for _, name := range names {
		fields := hashes[name].Val()
		if len(fields) == 0 {
			continue
		}
		maxParticipants, err := strconv.Atoi(fields["max_participants"])
		if err != nil {
			return nil, fmt.Errorf("activity %q: bad max_participants %q: %w", name, fields["max_participants"], err)
		}
		a := domain.NewActivity(name, fields["description"], fields["schedule"], maxParticipants)
		a.Participants = append(a.Participants, rosters[name].Val()...)
		activities[name] = a
	}
	return activities, nil
}

func (r *activityRepository) AddParticipant(ctx context.Context, activityName, email string) error {
	keys := []string{activityKey(activityName), participantsKey(activityName)}
	res, err := addScript.Run(ctx, r.client, keys, email).Int()
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	switch res {
	case -1:
		return domain.ErrActivityNotFound
	case 0:
		return domain.ErrAlreadySignedUp
	}
	return nil
}

func (r *activityRepository) RemoveParticipant(ctx context.Context, activityName, email string) error {
	keys := []string{activityKey(activityName), participantsKey(activityName)}
	res, err := removeScript.Run(ctx, r.client, keys, email).Int()
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	switch res {
	case -1:
		return domain.ErrActivityNotFound
	case 0:
		return domain.ErrNotRegistered
	}
	return nil
}
