package cache

import (
	"github.com/go-redis/redis/v8"
)

// Lua scripts for Redis operations
var (
	setTrackedScript        *redis.Script
	invalidateTrackedScript *redis.Script
)

func init() {
	// store a value and remember its key in the tracking set.
	setTrackedScript = redis.NewScript(`
		local key = KEYS[1]
		local set_key = KEYS[2]
		local expiration = tonumber(ARGV[2])
		if expiration > 0 then
			redis.call('SET', key, ARGV[1], 'PX', expiration)
		else
			redis.call('SET', key, ARGV[1])
		end
		redis.call('SADD', set_key, key)
		return 1
	`)

	// remove every tracked key and the tracking set itself.
	invalidateTrackedScript = redis.NewScript(`
		local set_key = KEYS[1]
		local cache_keys = redis.call('SMEMBERS', set_key)
		for i = 1, #cache_keys, 500 do
			redis.call('DEL', unpack(cache_keys, i, math.min(i + 499, #cache_keys)))
		end
		redis.call('DEL', set_key)
		return #cache_keys
	`)
}
