package util

// NextOrderIndex 新同级条目追加到末尾：max(已有序号)+1，空集合为 0
func NextOrderIndex(indices []int) int {
	max := -1
	for _, idx := range indices {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}

// ClampIndex 将目标位置限制在 [0, length-1]
func ClampIndex(idx, length int) int {
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}
