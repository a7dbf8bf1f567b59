package page

// AppendBlock 在切片末尾追加一个新建的块并返回新切片。
func AppendBlock(blocks []Block, blockType, title string) []Block {
	return append(blocks, NewBlock(blockType, title))
}

// UpdateBlockData 对指定 ID 的块做数据浅合并：patch 中的键覆盖同名键，
// 其余键保持不变。ID 不存在时原样返回。
func UpdateBlockData(blocks []Block, id string, patch map[string]any) []Block {
	for i := range blocks {
		if blocks[i].ID != id {
			continue
		}
		merged := make(map[string]any, len(blocks[i].Data)+len(patch))
		for k, v := range blocks[i].Data {
			merged[k] = v
		}
		for k, v := range patch {
			merged[k] = v
		}
		blocks[i].Data = merged
	}
	return blocks
}

// UpdateBlockStyle 对指定 ID 的块做样式浅合并。patch 中的空字段不覆盖。
func UpdateBlockStyle(blocks []Block, id string, patch Style) []Block {
	for i := range blocks {
		if blocks[i].ID != id {
			continue
		}
		st := Style{}
		if blocks[i].Style != nil {
			st = *blocks[i].Style
		}
		if patch.BgColor != "" {
			st.BgColor = patch.BgColor
		}
		if patch.TextColor != "" {
			st.TextColor = patch.TextColor
		}
		if patch.Padding != "" {
			st.Padding = patch.Padding
		}
		if patch.Alignment != "" {
			st.Alignment = patch.Alignment
		}
		blocks[i].Style = &st
	}
	return blocks
}

// MoveBlock 把 index 处的块移动 dir 个位置（-1 上移，+1 下移）。
// index 越界或目标位置越界时不做任何修改。
func MoveBlock(blocks []Block, index, dir int) []Block {
	target := index + dir
	if index < 0 || index >= len(blocks) || target < 0 || target >= len(blocks) {
		return blocks
	}
	b := blocks[index]
	rest := append(blocks[:index:index], blocks[index+1:]...)
	out := make([]Block, 0, len(blocks))
	out = append(out, rest[:target]...)
	out = append(out, b)
	out = append(out, rest[target:]...)
	return out
}

// RemoveBlock 删除指定 ID 的块。ID 不存在时原样返回。
func RemoveBlock(blocks []Block, id string) []Block {
	out := blocks[:0]
	for _, b := range blocks {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
