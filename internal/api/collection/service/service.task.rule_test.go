// Package collectionsvc - Test parse chính sách quorum từ payload động.
package collectionsvc

import (
	"testing"
)

func TestParseQuorumPolicy_Count(t *testing.T) {
	p := ParseQuorumPolicy(map[string]interface{}{"quorumCount": 2})
	if p.Kind != QuorumCount || p.Count != 2 {
		t.Errorf("quorumCount=2 phải parse thành Count(2), được %+v", p)
	}

	// BSON decode số nguyên có thể ra int32/int64/float64
	for _, raw := range []interface{}{int32(3), int64(3), float64(3)} {
		p := ParseQuorumPolicy(map[string]interface{}{"quorumCount": raw})
		if p.Kind != QuorumCount || p.Count != 3 {
			t.Errorf("quorumCount %T(%v) phải parse thành Count(3), được %+v", raw, raw, p)
		}
	}
}

func TestParseQuorumPolicy_Ratio(t *testing.T) {
	p := ParseQuorumPolicy(map[string]interface{}{"quorumRatio": 0.6})
	if p.Kind != QuorumRatio || p.Ratio != 0.6 {
		t.Errorf("quorumRatio=0.6 phải parse thành Ratio(0.6), được %+v", p)
	}
}

func TestParseQuorumPolicy_CountWinsOverRatio(t *testing.T) {
	p := ParseQuorumPolicy(map[string]interface{}{"quorumCount": 2, "quorumRatio": 0.9})
	if p.Kind != QuorumCount {
		t.Errorf("quorumCount phải được ưu tiên trước quorumRatio, được %+v", p)
	}
}

func TestParseQuorumPolicy_InvalidFallsToDefault(t *testing.T) {
	cases := []map[string]interface{}{
		nil,
		{},
		{"quorumCount": 0},
		{"quorumCount": -1},
		{"quorumCount": 1.5}, // không phải số nguyên
		{"quorumRatio": 0.0},
		{"quorumRatio": 1.5},
		{"quorumRatio": "abc"},
	}
	for _, payload := range cases {
		p := ParseQuorumPolicy(payload)
		if p.Kind != QuorumDefault {
			t.Errorf("payload %v phải rơi về Default, được %+v", payload, p)
		}
	}
}

func TestQuorumPolicy_Required(t *testing.T) {
	cases := []struct {
		name     string
		policy   QuorumPolicy
		total    int
		expected int
	}{
		{"count tuyệt đối", QuorumPolicy{Kind: QuorumCount, Count: 2}, 3, 2},
		{"count vượt sĩ số kẹp về total", QuorumPolicy{Kind: QuorumCount, Count: 10}, 3, 3},
		{"ratio làm tròn lên", QuorumPolicy{Kind: QuorumRatio, Ratio: 0.5}, 3, 2},
		{"ratio 1.0 là toàn bộ", QuorumPolicy{Kind: QuorumRatio, Ratio: 1.0}, 4, 4},
		{"mặc định ceil(total/2)", QuorumPolicy{Kind: QuorumDefault}, 5, 3},
		{"mặc định với total chẵn", QuorumPolicy{Kind: QuorumDefault}, 4, 2},
		{"total 0", QuorumPolicy{Kind: QuorumDefault}, 0, 0},
		{"tối thiểu 1", QuorumPolicy{Kind: QuorumRatio, Ratio: 0.01}, 3, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.policy.Required(tc.total); got != tc.expected {
				t.Errorf("Required(%d) = %d, muốn %d", tc.total, got, tc.expected)
			}
		})
	}
}
