package fit

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ssargent/fitkit/pkg/profile"
)

type memoKey struct {
	mesgNum     profile.MesgNum
	parentIndex int64
	fieldNum    int64
}

type memoPart struct {
	index int64
	data  []byte
}

// decodeMemoGlobs joins the parts of each memo glob in part order and stores the
// text on the message it annotates
func decodeMemoGlobs(r *ReadResult) {
	globs := r.Mesgs(profile.MesgNumMemoGlob)
	if len(globs) == 0 {
		return
	}

	groups := make(map[memoKey][]memoPart)
	var order []memoKey
	for _, g := range globs {
		mesgNum, ok := memoMesgNum(g.Fields["mesgNum"])
		if !ok {
			continue
		}
		parent, ok := toInt64(first(g.Fields["parentIndex"]))
		if !ok {
			continue
		}
		fieldNum, ok := toInt64(first(g.Fields["fieldNum"]))
		if !ok {
			continue
		}
		partIndex, _ := toInt64(first(g.Fields["partIndex"]))
		data := memoBytes(g.Fields["data"])
		if len(data) == 0 {
			data = memoBytes(g.Fields["memo"])
		}

		key := memoKey{mesgNum: mesgNum, parentIndex: parent, fieldNum: fieldNum}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], memoPart{index: partIndex, data: data})
	}

	for _, key := range order {
		parts := groups[key]
		sort.SliceStable(parts, func(i, j int) bool { return parts[i].index < parts[j].index })
		var buf []byte
		for _, p := range parts {
			buf = append(buf, p.data...)
		}
		text := strings.ToValidUTF8(strings.TrimRight(string(buf), "\x00"), "�")

		target, ok := memoTarget(r.Mesgs(key.mesgNum), key.parentIndex)
		if !ok {
			continue
		}
		name := strconv.FormatInt(key.fieldNum, 10)
		if mp := profile.Message(key.mesgNum); mp != nil {
			if fp := mp.Field(uint8(key.fieldNum)); fp != nil {
				name = fp.Name
			}
		}
		target.Fields[name] = text
	}
}

func memoMesgNum(v any) (profile.MesgNum, bool) {
	if name, ok := v.(string); ok {
		return profile.MesgNumByName(name)
	}
	n, ok := toInt64(first(v))
	return profile.MesgNum(n), ok
}

func memoBytes(v any) []byte {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []byte(t)
	case []any:
		out := make([]byte, 0, len(t))
		for _, item := range t {
			if n, ok := toInt64(item); ok {
				out = append(out, byte(n))
			}
		}
		return out
	}
	if n, ok := toInt64(v); ok {
		return []byte{byte(n)}
	}
	return nil
}

// memoTarget finds the annotated message by messageIndex, falling back to its
// position in the collection
func memoTarget(mesgs []Message, parent int64) (Message, bool) {
	for _, m := range mesgs {
		if mi, ok := toInt64(first(m.Fields["messageIndex"])); ok && mi == parent {
			return m, true
		}
	}
	if parent >= 0 && parent < int64(len(mesgs)) {
		return mesgs[parent], true
	}
	return Message{}, false
}
