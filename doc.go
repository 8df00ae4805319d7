// Package mcaststats 组播统计服务
//
// 维护 组播组 -> (VLAN, 源集合) 统计表，并向监听器发布统计事件。
// 本包把内部模块（事件总线、统计管理器、Prometheus 指标）组装为
// 一个可启动/停止的服务。
//
// # 快速开始
//
//	svc, err := mcaststats.New(config.NewConfig())
//	if err != nil {
//	    return err
//	}
//	if err := svc.Start(ctx); err != nil {
//	    return err
//	}
//	defer svc.Stop(ctx)
//
//	stats := svc.Statistics()
//	route, _ := types.NewMcastRoute(group, source, types.RouteTypeIGMP)
//	stats.SetMcastStatistics(route, 10)
//
// # 监听事件
//
//	l := interfaces.StatisticsListenerFunc(func(e types.StatisticsEvent) {
//	    fmt.Println(e)
//	})
//	svc, _ := mcaststats.New(cfg, mcaststats.WithListener(&l))
//
// # 周期报告
//
// 配置 Poller.Enabled 并提供路由来源（WithRouteSource 或配置中的静态路由）后，
// 服务周期性写入路由并推送 StatsReport 全量报告。
package mcaststats
