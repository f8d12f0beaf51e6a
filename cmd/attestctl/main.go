// attestctl 零知识证明子系统运维命令行
package main

func main() {
	Execute()
}
