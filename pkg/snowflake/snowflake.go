package snowflake

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// 多实例部署时通过 NODE_ID 区分节点
func init() {
	id, err := strconv.ParseInt(os.Getenv("NODE_ID"), 10, 64)
	if err != nil || id < 0 || id > 1023 {
		id = 1
	}
	node, _ = snowflake.NewNode(id)
}

func GenID() int64 {
	return node.Generate().Int64()
}
